package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindAuthentication, KindOf(Authentication("nope")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindInternal, KindOf(errors.New("some db failure")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handling request: %w", Conflict("email taken"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsKind(err, KindConflict))
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk io")
	err := Internal(cause, "something went wrong")

	assert.Equal(t, "something went wrong", err.Error())
	assert.True(t, errors.Is(err, cause), "cause must stay reachable for logs")
}
