// Package main provides a tool to seed the database with sample catalog data.
//
// It writes a small set of authors, publishers, and books so the admin UI and
// public endpoints have something to show during development.
//
// Usage:
//
//	DATA_DIR=~/PageKeep/data go run ./cmd/seed
//	DATA_DIR=~/PageKeep/data go run ./cmd/seed --wipe  # Clear catalog first
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

var wipe = flag.Bool("wipe", false, "Delete all catalog documents before seeding")

type seedBook struct {
	title     string
	year      int
	author    string
	publisher string
	tags      []string
}

var seedAuthors = []domain.Author{
	{Name: "Ursula K. Le Guin", Email: "ursula@example.com"},
	{Name: "Frank Herbert"},
	{Name: "Octavia Butler", Email: "octavia@example.com"},
}

var seedPublishers = []domain.Publisher{
	{Name: "Ace Books", City: "New York"},
	{Name: "Chilton Books", City: "Radnor"},
}

var seedBooks = []seedBook{
	{"The Dispossessed", 1974, "Ursula K. Le Guin", "Ace Books", []string{"Science Fiction", "Classic"}},
	{"A Wizard of Earthsea", 1968, "Ursula K. Le Guin", "Ace Books", []string{"Fantasy", "Classic", "Young Adult"}},
	{"Dune", 1965, "Frank Herbert", "Chilton Books", []string{"Science Fiction", "Classic", "Political"}},
	{"Kindred", 1979, "Octavia Butler", "Ace Books", []string{"Science Fiction", "Historical"}},
}

func main() {
	flag.Parse()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = os.ExpandEnv("$HOME/PageKeep/data")
	}
	dbPath := filepath.Join(dataDir, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipe {
		wipeCatalog(ctx, s)
	}

	authorIDs := make(map[string]string)
	for _, a := range seedAuthors {
		author := a
		author.ID = id.MustGenerate("aut")
		author.InitTimestamps()
		if err := s.Authors.Create(ctx, author.ID, &author); err != nil {
			log.Fatalf("Failed to create author %q: %v", author.Name, err)
		}
		authorIDs[author.Name] = author.ID
		fmt.Printf("Created author %s (%s)\n", author.Name, author.ID)
	}

	publisherIDs := make(map[string]string)
	for _, p := range seedPublishers {
		publisher := p
		publisher.ID = id.MustGenerate("pub")
		publisher.InitTimestamps()
		if err := s.Publishers.Create(ctx, publisher.ID, &publisher); err != nil {
			log.Fatalf("Failed to create publisher %q: %v", publisher.Name, err)
		}
		publisherIDs[publisher.Name] = publisher.ID
		fmt.Printf("Created publisher %s (%s)\n", publisher.Name, publisher.ID)
	}

	for _, b := range seedBooks {
		year := b.year
		book := domain.Book{
			Title:       b.title,
			Year:        &year,
			AuthorID:    authorIDs[b.author],
			PublisherID: publisherIDs[b.publisher],
			Tags:        b.tags,
		}
		book.ID = id.MustGenerate("book")
		book.InitTimestamps()
		if err := s.Books.Create(ctx, book.ID, &book); err != nil {
			log.Fatalf("Failed to create book %q: %v", book.Title, err)
		}
		fmt.Printf("Created book %s (%s)\n", book.Title, book.ID)
	}

	fmt.Println("Seed complete.")
}

// wipeCatalog deletes every catalog document. Sessions are left alone so
// a logged-in admin survives a reseed.
func wipeCatalog(ctx context.Context, s *store.Store) {
	books, err := s.Books.Collect(ctx)
	if err != nil {
		log.Fatalf("Failed to list books: %v", err)
	}
	for _, b := range books {
		mustDelete(s.Books.Delete(ctx, b.ID), "book")
	}

	authors, err := s.Authors.Collect(ctx)
	if err != nil {
		log.Fatalf("Failed to list authors: %v", err)
	}
	for _, a := range authors {
		mustDelete(s.Authors.Delete(ctx, a.ID), "author")
	}

	publishers, err := s.Publishers.Collect(ctx)
	if err != nil {
		log.Fatalf("Failed to list publishers: %v", err)
	}
	for _, p := range publishers {
		mustDelete(s.Publishers.Delete(ctx, p.ID), "publisher")
	}

	borrows, err := s.Borrows.Collect(ctx)
	if err != nil {
		log.Fatalf("Failed to list borrow requests: %v", err)
	}
	for _, b := range borrows {
		mustDelete(s.Borrows.Delete(ctx, b.ID), "borrow request")
	}

	ratings, err := s.Ratings.Collect(ctx)
	if err != nil {
		log.Fatalf("Failed to list ratings: %v", err)
	}
	for _, r := range ratings {
		mustDelete(s.Ratings.Delete(ctx, r.ID), "rating")
	}

	fmt.Printf("Cleared %d books, %d authors, %d publishers, %d borrow requests, %d ratings\n",
		len(books), len(authors), len(publishers), len(borrows), len(ratings))
}

func mustDelete(err error, label string) {
	if err != nil {
		log.Fatalf("Failed to delete %s: %v", label, err)
	}
}
