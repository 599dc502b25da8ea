package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBlogPostBeforeCreate(t *testing.T) {
	t.Run("published date defaults to creation time", func(t *testing.T) {
		p := &BlogPost{Title: "Hello", Slug: "hello"}
		assert.NoError(t, p.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.True(t, p.PublishedDate.Equal(p.CreatedAt))
		assert.Equal(t, DefaultAuthor, p.Author)
	})

	t.Run("explicit published date is kept", func(t *testing.T) {
		p := &BlogPost{}
		p.PublishedDate = now().AddDate(0, -1, 0)
		want := p.PublishedDate
		assert.NoError(t, p.BeforeCreate(nil))
		assert.True(t, p.PublishedDate.Equal(want))
	})
}

func TestContactInquiryBeforeCreate(t *testing.T) {
	i := &ContactInquiry{}
	assert.NoError(t, i.BeforeCreate(nil))
	assert.Equal(t, InquiryStatusNew, i.Status)
}

func TestDefaults(t *testing.T) {
	var p Project
	p.SetDefaults()
	assert.True(t, p.IsActive)
	assert.Equal(t, ProjectStatusCompleted, p.Status)

	var tm Testimonial
	tm.SetDefaults()
	assert.Equal(t, MaxRating, tm.Rating)

	var s CompanyStat
	s.SetDefaults()
	assert.Equal(t, "+", s.Suffix)
}
