package storage

import (
	"testing"
	"time"

	infraconfig "github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3DocumentArchiveValidation(t *testing.T) {
	_, err := NewS3DocumentArchive(nil, nil)
	require.Error(t, err)

	_, err = NewS3DocumentArchive(&infraconfig.StorageConfig{Region: "eu-west-3"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestSignedDocumentKeyLayout(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	at := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	key := signedDocumentKey(id, at)
	assert.Equal(t, "mentions/2024/03/7c9e6679-7425-40de-944b-e07fc1f90ae7.pdf", key)
}
