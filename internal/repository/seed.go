package repository

import (
	"time"

	"Share_Space/internal/model"
)

// SeedAuthorUID owns the built-in sample content.
const SeedAuthorUID = "100001"

const seedAuthor = "Share Admin"

func SeedPosts(now time.Time) []model.Post {
	return []model.Post{
		{
			ID:        "1",
			Type:      model.PostArticle,
			Category:  model.SectionAnalysis,
			Title:     "Rebuilt Memories: Environmental Storytelling in Elden Ring",
			Content:   "Every vista in the Lands Between is a forgotten piece of history. A ruined wall and a half-heard melody say more than any lore dump.",
			Author:    seedAuthor,
			AuthorUID: SeedAuthorUID,
			Timestamp: now.Add(-2 * time.Hour),
			Images:    []string{"https://images.unsplash.com/photo-1542751371-adc38448a05e?q=80&w=800"},
			Tags:      []string{"Elden Ring", "Game Review"},
			Comments:  []model.Comment{},
			Views:     1240,
			Status:    model.StatusPublished,
		},
		{
			ID:        "2",
			Type:      model.PostNews,
			Category:  model.SectionNews,
			Title:     "Autumn Season Preview: Shows Worth Watching",
			Content:   "Another harvest season. The final arc of a long-running classic returns, and several original productions look excellent.",
			Author:    seedAuthor,
			AuthorUID: SeedAuthorUID,
			Timestamp: now.Add(-24 * time.Hour),
			Images:    []string{"https://images.unsplash.com/photo-1578632738980-4204f98c4172?q=80&w=800"},
			Tags:      []string{"Anime News", "Autumn Season"},
			Comments:  []model.Comment{},
			Views:     3500,
			Status:    model.StatusPublished,
		},
	}
}

func SeedMedia(now time.Time) []model.MediaItem {
	return []model.MediaItem{
		{
			ID:        "m1",
			AuthorUID: SeedAuthorUID,
			Title:     "Frieren: Beyond Journey's End",
			Cover:     "https://picsum.photos/seed/frieren/200/300",
			Progress:  100,
			Rating:    5,
			Status:    model.WatchCompleted,
			Type:      model.MediaAnime,
			Comments: []model.Comment{
				{ID: "mc1", Sender: "Traveller", Text: "Quiet moments are the ones that stay with you.", Timestamp: now},
			},
			ApprovalStatus: model.StatusPublished,
		},
		{
			ID:             "m2",
			AuthorUID:      SeedAuthorUID,
			Title:          "The Legend of Zelda: Tears of the Kingdom",
			Cover:          "https://picsum.photos/seed/zelda/200/300",
			Progress:       75,
			Rating:         5,
			Status:         model.WatchWatching,
			Type:           model.MediaGame,
			Comments:       []model.Comment{},
			ApprovalStatus: model.StatusPublished,
		},
	}
}

func SeedGallery() []model.ArtItem {
	return []model.ArtItem{
		{ID: "g1", AuthorUID: SeedAuthorUID, URL: "https://picsum.photos/seed/art1/400/600", Title: "City in Memory", AspectRatio: model.AspectPortrait, Status: model.StatusPublished},
		{ID: "g2", AuthorUID: SeedAuthorUID, URL: "https://picsum.photos/seed/art2/600/400", Title: "Silent Forest", AspectRatio: model.AspectLandscape, Status: model.StatusPublished},
		{ID: "g3", AuthorUID: SeedAuthorUID, URL: "https://picsum.photos/seed/art3/400/400", Title: "Girl and Cat", AspectRatio: model.AspectSquare, Status: model.StatusPublished},
	}
}
