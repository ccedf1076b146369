package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
)

func TestOpenMongoSource_Failures(t *testing.T) {
	tests := []struct {
		name string
		src  MongoSource
	}{
		{name: "missing database", src: MongoSource{URI: "mongodb://localhost:27017"}},
		{name: "malformed uri", src: MongoSource{URI: "not-a-mongo-uri", Database: "flightstats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, db, err := OpenMongoSource(context.Background(), tt.src)
			assert.ErrorIs(t, err, repository.ErrSourceUnavailable)
			assert.Nil(t, client)
			assert.Nil(t, db)
		})
	}
}
