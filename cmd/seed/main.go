package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Name  string
	Email string
}

type seedPost struct {
	AuthorEmail string
	Title       string
	Summary     string
	Content     string
	// DaysAhead > 0 creates a scheduled post.
	DaysAhead int
}

var seedUsers = []seedUser{
	{Name: "Ada Byron", Email: "ada@example.com"},
	{Name: "Grace Hopper", Email: "grace@example.com"},
	{Name: "Edsger Dijkstra", Email: "edsger@example.com"},
}

var seedPosts = []seedPost{
	{
		AuthorEmail: "ada@example.com",
		Title:       "Notes on the Analytical Engine",
		Summary:     "Why machines might one day compose music.",
		Content:     "The Analytical Engine weaves algebraical patterns just as the Jacquard loom weaves flowers and leaves.",
	},
	{
		AuthorEmail: "grace@example.com",
		Title:       "The First Bug",
		Summary:     "A moth in relay 70.",
		Content:     "From then on, when anything went wrong with a computer, we said it had bugs in it.",
	},
	{
		AuthorEmail: "grace@example.com",
		Title:       "Nanoseconds",
		Summary:     "A piece of wire the length of light's travel.",
		Content:     "I keep a nanosecond on my desk to remind programmers what they throw away.",
		DaysAhead:   2,
	},
	{
		AuthorEmail: "edsger@example.com",
		Title:       "On the Cruelty of Really Teaching Computing Science",
		Summary:     "Radical novelty and its discontents.",
		Content:     "The tools we use have a profound and devious influence on our thinking habits.",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Like{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	usersByEmail := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		if existing, err := userRepo.FindByEmail(ctx, su.Email); err == nil {
			log.Printf("User %s already exists, skipping", su.Email)
			usersByEmail[su.Email] = existing
			continue
		}
		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		usersByEmail[su.Email] = user
		log.Printf("Created user %s (id=%d)", su.Email, user.ID)
	}

	now := time.Now()
	posts := make([]*model.Post, 0, len(seedPosts))
	for _, sp := range seedPosts {
		author, ok := usersByEmail[sp.AuthorEmail]
		if !ok {
			log.Fatalf("Seed post %q references unknown author %s", sp.Title, sp.AuthorEmail)
		}
		post := &model.Post{
			UserID:      author.ID,
			Title:       sp.Title,
			Summary:     sp.Summary,
			Content:     sp.Content,
			AvailableAt: now.AddDate(0, 0, sp.DaysAhead),
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create post %q: %v", sp.Title, err)
		}
		posts = append(posts, post)
		if sp.DaysAhead > 0 {
			log.Printf("Created scheduled post %q (id=%d, available in %d days)", sp.Title, post.ID, sp.DaysAhead)
		} else {
			log.Printf("Created post %q (id=%d)", sp.Title, post.ID)
		}
	}

	// Authors like each other's published posts; scheduled ones stay unliked.
	liked := 0
	for _, user := range usersByEmail {
		for _, post := range posts {
			if post.UserID == user.ID || post.AvailableAt.After(now) {
				continue
			}
			if _, err := likeRepo.FindByUserAndPost(ctx, user.ID, post.ID); err == nil {
				continue
			}
			like := &model.Like{
				UserID:  user.ID,
				PostID:  post.ID,
				LikedAt: now,
			}
			if err := likeRepo.Create(ctx, like); err != nil {
				log.Printf("Skipping like (user=%d post=%d): %v", user.ID, post.ID, err)
				continue
			}
			liked++
		}
	}
	log.Printf("Created %d likes", liked)

	log.Println("Seed completed")
}
