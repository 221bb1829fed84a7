package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindNotFound, domain.KindOf(domain.NewNotFound("DE89370400440532013000")))
	assert.Equal(t, domain.KindNotPermitted, domain.KindOf(domain.NewNotPermitted(domain.MsgOperationNotPermitted)))
	assert.Equal(t, domain.KindMalformedInput, domain.KindOf(domain.NewMalformedInput("bad input")))
	assert.Equal(t, domain.KindConflict, domain.KindOf(domain.NewConflict("retry", errors.New("deadlock"))))
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(errors.New("boom")))
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(nil))
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("apply transaction: %w", domain.NewNotFound("DE89370400440532013000"))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("serialization failure")
	err := domain.NewConflict("concurrent ledger update, retry the operation", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "serialization failure")
}
