package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"labeler/internal/catalog"
	"labeler/internal/models"
)

type closingClassifier struct {
	closed bool
}

func (c *closingClassifier) Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error) {
	return nil, nil
}

func (c *closingClassifier) Close() error {
	c.closed = true
	return nil
}

type plainClassifier struct{}

func (plainClassifier) Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error) {
	return nil, nil
}

func TestClose_ReleasesClosableClassifier(t *testing.T) {
	cls := &closingClassifier{}
	a := &App{Classifier: cls}

	assert.NoError(t, a.Close())
	assert.True(t, cls.closed)
}

func TestClose_NoopForNonClosableClassifier(t *testing.T) {
	a := &App{Classifier: plainClassifier{}}
	assert.NoError(t, a.Close())
}
