package dedup

// Key derives the uniqueness key for an auction row.
// Formula: title|link. Two rows with the same title and link are the
// same auction even when date, location, category or description differ.
func Key(title, link string) string {
	return title + "|" + link
}
