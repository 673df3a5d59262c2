package correlation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnsure(t *testing.T) {
	ctx, id := Ensure(context.Background())
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, FromContext(ctx))

	same, again := Ensure(WithID(context.Background(), "session-1"))
	assert.Equal(t, "session-1", again)
	assert.Equal(t, "session-1", FromContext(same))

	assert.Empty(t, FromContext(context.Background()))
}
