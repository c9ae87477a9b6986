package domain

// Book represents a book in the catalog.
// RatingSum/RatingCount/RatingAvg are derived fields maintained by the
// rating workflow; admin writes never set them directly.
type Book struct {
	Record
	Title       string   `json:"title"`
	Year        *int     `json:"year,omitempty"`
	AuthorID    string   `json:"author_id"`
	PublisherID string   `json:"publisher_id"`
	Tags        []string `json:"tags"`
	RatingSum   int      `json:"rating_sum"`
	RatingCount int      `json:"rating_count"`
	RatingAvg   float64  `json:"rating_avg"`
}

// HasTag reports whether the book carries the given tag.
func (b *Book) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every tag in the filter set is present on
// the book. Subset semantics: an empty filter always matches.
func (b *Book) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !b.HasTag(t) {
			return false
		}
	}
	return true
}

// AddRating folds a single rating into the running counters.
func (b *Book) AddRating(rating int) {
	b.RatingSum += rating
	b.RatingCount++
	b.RatingAvg = float64(b.RatingSum) / float64(b.RatingCount)
}
