package dialogue

import (
	"testing"

	"nicklife/fitbit"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sess := &Session{
		Candidates:   []fitbit.FoodCandidate{banana(), bananaBread()},
		CurrentIndex: 1,
	}

	attrs := sess.ToAttributes()
	got, err := FromAttributes(attrs)
	must.NoError(t, err)
	must.NotNil(t, got)

	should.Equal(t, 1, got.CurrentIndex)
	must.Len(t, got.Candidates, 2)
	should.Equal(t, banana(), got.Candidates[0])
	should.Equal(t, bananaBread(), got.Candidates[1])
	should.Equal(t, "Banana Bread", got.Current().Name)
}

func TestFromAttributes(t *testing.T) {
	t.Run("absent means no session", func(t *testing.T) {
		sess, err := FromAttributes(map[string]any{})
		must.NoError(t, err)
		should.Nil(t, sess)
	})

	t.Run("unrelated attributes ignored", func(t *testing.T) {
		sess, err := FromAttributes(map[string]any{"prompt": "something"})
		must.NoError(t, err)
		should.Nil(t, sess)
	})

	t.Run("empty candidate list rejected", func(t *testing.T) {
		_, err := FromAttributes(map[string]any{
			attributeKey: map[string]any{"candidates": []any{}, "current_index": 0},
		})
		should.Error(t, err)
	})

	t.Run("index out of range rejected", func(t *testing.T) {
		attrs := (&Session{Candidates: []fitbit.FoodCandidate{banana()}, CurrentIndex: 0}).ToAttributes()
		inner := attrs[attributeKey].(map[string]any)
		inner["current_index"] = float64(5)

		_, err := FromAttributes(attrs)
		should.Error(t, err)
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		_, err := FromAttributes(map[string]any{attributeKey: "not an object"})
		should.Error(t, err)
	})
}
