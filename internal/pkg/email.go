package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

func SendEmail(cfg SMTPConfig, to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(m)
}

// ReviewNoticeHTML 待审核内容通知邮件正文
func ReviewNoticeHTML(kind, title, authorUID string) string {
	return fmt.Sprintf(`<p>Hello,</p><p>A new <b>%s</b> is waiting for review: <b>%s</b> (author uid %s).</p><p>Open the admin dashboard to approve or reject it.</p>`,
		html.EscapeString(kind), html.EscapeString(title), html.EscapeString(authorUID))
}
