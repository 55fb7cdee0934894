package metadata

import (
	"github.com/mozillazg/go-slugify"
)

// Tag is a document tag.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewTag returns the tag named name.
func NewTag(name string) Tag { return Tag{Name: name, Slug: slugify.Slugify(name)} }

func (t Tag) String() string { return t.Name }

// Author is a document author.
type Author struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewAuthor returns the author named name.
func NewAuthor(name string) Author { return Author{Name: name, Slug: slugify.Slugify(name)} }

func (a Author) String() string { return a.Name }

// Category is the category a document is filed under.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewCategory returns the category named name.
func NewCategory(name string) Category { return Category{Name: name, Slug: slugify.Slugify(name)} }

func (c Category) String() string { return c.Name }
