package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

func TestDisplayName(t *testing.T) {
	c := Customer{FirstName: nullable.Of("Alice"), LastName: nullable.Of("Smith")}
	assert.Equal(t, "Alice Smith", c.DisplayName())

	c.LastName = nullable.String{Val: "ignored", Valid: false}
	assert.Equal(t, "Alice", c.DisplayName())

	assert.Equal(t, "", Customer{}.DisplayName())
}

func TestOrderBuckets(t *testing.T) {
	items := []Customer{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	AttachOrderCounts(items, map[string]int{"b": 2, "c": 5})

	got := []string{items[0].OrderBucket(), items[1].OrderBucket(), items[2].OrderBucket()}
	assert.Equal(t, []string{"0", "1-2", "3+"}, got)
}

func TestWritesAreReadOnly(t *testing.T) {
	svc := NewService(nil, nil, 0)
	assert.ErrorIs(t, svc.Save(context.Background(), "", Input{}), ErrReadOnly)
	assert.ErrorIs(t, svc.Delete(context.Background(), "x"), ErrReadOnly)
}
