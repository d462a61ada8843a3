package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSnapshotIndexes(t *testing.T) {
	indexes := SnapshotIndexes()
	require.Len(t, indexes, 2)
	assert.Equal(t, bson.D{{Key: "position", Value: 1}}, indexes[0].Keys)
	assert.Equal(t, bson.D{{Key: "fetchedAt", Value: 1}}, indexes[1].Keys)
	assert.Equal(t, "property_snapshots", SnapshotCollection)
}
