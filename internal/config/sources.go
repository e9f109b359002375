package config

import "github.com/abelbrown/techinsights/internal/model"

// DefaultCategories is the curated category and source list.
// Source order within a category is the dedup priority.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			ID:    "ai",
			Label: "AI",
			Sources: []model.Source{
				{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"},
				{Name: "MIT Tech Review", URL: "https://www.technologyreview.com/feed/"},
				{Name: "Wired AI", URL: "https://www.wired.com/feed/tag/ai/latest/rss"},
				{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml"},
				{Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/"},
				{Name: "Hugging Face Blog", URL: "https://huggingface.co/blog/feed.xml"},
			},
		},
		{
			ID:    "devtools",
			Label: "Developer Tools",
			Sources: []model.Source{
				{Name: "Dev.to", URL: "https://dev.to/feed/"},
				{Name: "GitHub Blog", URL: "https://github.blog/feed/"},
				{Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
			},
		},
		{
			ID:    "tech",
			Label: "Tech Industry",
			Sources: []model.Source{
				{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
				{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab"},
			},
		},
		{
			ID:    "startups",
			Label: "Startups & VC",
			Sources: []model.Source{
				{Name: "Y Combinator", URL: "https://www.ycombinator.com/blog/rss/"},
				{Name: "a16z", URL: "https://a16z.com/feed/"},
				{Name: "First Round Review", URL: "https://review.firstround.com/feed.xml"},
			},
		},
		{
			ID:    "security",
			Label: "Security",
			Sources: []model.Source{
				{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/"},
				{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
				{Name: "Schneier on Security", URL: "https://www.schneier.com/feed/"},
			},
		},
	}
}
