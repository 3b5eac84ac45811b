package main

import (
	"fmt"
	"time"

	"pressroom/pkg/config"
	"pressroom/pkg/database"
	"pressroom/pkg/logger"
	"pressroom/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users := []struct {
		email    string
		username string
		role     models.UserRole
	}{
		{"admin@pressroom.test", "admin", models.RoleAdmin},
		{"maria@pressroom.test", "maria_writes", models.RoleAuthor},
		{"tom@pressroom.test", "tom_writes", models.RoleAuthor},
		{"reader@pressroom.test", "avid_reader", models.RoleSubscriber},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userIDs := make(map[string]int64, len(users))
	for _, u := range users {
		user := models.User{
			Email:    u.email,
			Username: u.username,
			Password: string(hashed),
			Role:     u.role,
			IsActive: true,
		}
		if err := db.Where(models.User{Email: u.email}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
		userIDs[u.username] = user.ID
		log.Info("Seeded user %s (%s)", u.username, u.role)
	}

	categoryNames := []string{"Politics", "Technology", "Culture", "Sports"}
	categoryIDs := make(map[string]int64, len(categoryNames))
	for _, name := range categoryNames {
		category := models.Category{Name: name, Slug: models.Slugify(name)}
		if err := db.Where(models.Category{Slug: category.Slug}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		categoryIDs[name] = category.ID
	}

	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	nextWeek := now.AddDate(0, 0, 7)

	posts := []struct {
		title       string
		body        string
		author      string
		category    string
		publishedAt *time.Time
	}{
		{"Budget Talks Stall Again", "The third round of negotiations ended without agreement.", "maria_writes", "Politics", &lastWeek},
		{"A Quiet Revolution in Batteries", "Solid-state cells are finally leaving the lab.", "tom_writes", "Technology", &now},
		{"Museum Season Preview", "What to see this autumn, gallery by gallery.", "maria_writes", "Culture", &nextWeek},
		{"Derby Ends in Chaos", "Two red cards and a pitch invasion.", "tom_writes", "Sports", nil},
	}

	for _, p := range posts {
		categoryID := categoryIDs[p.category]
		post := models.Post{
			AuthorID:    userIDs[p.author],
			CategoryID:  &categoryID,
			Title:       p.title,
			Slug:        models.Slugify(p.title),
			Body:        p.body,
			PublishedAt: p.publishedAt,
		}
		if err := db.Where(models.Post{Slug: post.Slug}).FirstOrCreate(&post).Error; err != nil {
			return fmt.Errorf("failed to seed post %q: %w", p.title, err)
		}

		comments := []models.Comment{
			{PostID: post.ID, AuthorName: "First Reader", Body: "Great reporting.", Status: models.CommentApproved},
			{PostID: post.ID, AuthorName: "Skeptic", Body: "Source for this?", Status: models.CommentPending},
		}
		for _, comment := range comments {
			if err := db.Where(models.Comment{PostID: comment.PostID, AuthorName: comment.AuthorName}).
				FirstOrCreate(&comment).Error; err != nil {
				return fmt.Errorf("failed to seed comment on %q: %w", p.title, err)
			}
		}
	}

	log.Info("Seeded %d users, %d categories, %d posts", len(users), len(categoryNames), len(posts))
	return nil
}
