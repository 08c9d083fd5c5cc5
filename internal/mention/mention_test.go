package mention

import (
	"testing"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single word", "hello @bob", []string{"bob"}},
		{"two word name", "ping @Jane Doe about this", []string{"Jane Doe"}},
		{"double space stops the name", "@Jane  Doe", []string{"Jane"}},
		{"newline stops the name", "@Jane\nDoe", []string{"Jane"}},
		{"bare at sign", "price @ 10", nil},
		{"at end of text", "cc @Jane", []string{"Jane"}},
		{"trailing space after one word", "cc @Jane ", []string{"Jane"}},
		{"multiple mentions", "@alice and @bob please review", []string{"alice and", "bob please"}},
		{"punctuation stops the name", "thanks @bob!", []string{"bob"}},
		{"underscore and digits", "@dev_2 check", []string{"dev_2 check"}},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Extract(tt.text)
			var names []string
			for _, s := range spans {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestExtract_Offsets(t *testing.T) {
	spans := Extract("ping @Jane Doe now")
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, 5, s.Start)
	assert.Equal(t, "@Jane Doe", "ping @Jane Doe now"[s.Start:s.End])
}

func TestActiveMention(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		caret      int
		wantPrefix string
		wantOK     bool
	}{
		{"open mention", "hey @ja", 7, "ja", true},
		{"just typed at", "hey @", 5, "", true},
		{"closed by space", "hey @jane thanks", 16, "", false},
		{"closed by newline", "hey @jane\n", 10, "", false},
		{"no at sign", "hello", 5, "", false},
		{"caret mid-prefix", "hey @jane", 7, "ja", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, _, ok := ActiveMention(tt.text, tt.caret)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantPrefix, prefix)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	// caret after "@ja" in "cc @ja now"
	text, caret := Insert("cc @ja now", 3, 6, "Jane Doe")
	assert.Equal(t, "cc @Jane Doe  now", text)
	assert.Equal(t, len("cc @Jane Doe "), caret)
}

func TestMatchCandidates(t *testing.T) {
	members := []domain.BoardMember{
		{UserID: 1, FullName: "Jane Doe", Email: "jane@fund.example"},
		{UserID: 2, FullName: "John Smith", Email: "john@fund.example"},
		{UserID: 3, FullName: "Janet Park", Email: "jpark@fund.example"},
	}

	t.Run("substring on name", func(t *testing.T) {
		got := MatchCandidates("jan", members)
		require.Len(t, got, 2)
		assert.Equal(t, uint64(1), got[0].UserID)
		assert.Equal(t, uint64(3), got[1].UserID)
	})

	t.Run("substring on email", func(t *testing.T) {
		got := MatchCandidates("jpark", members)
		require.Len(t, got, 1)
		assert.Equal(t, uint64(3), got[0].UserID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := MatchCandidates("JANE", members)
		require.Len(t, got, 1)
		assert.Equal(t, uint64(1), got[0].UserID)
	})

	t.Run("empty prefix matches everyone", func(t *testing.T) {
		assert.Len(t, MatchCandidates("", members), 3)
	})
}

func TestResolve(t *testing.T) {
	members := []domain.BoardMember{
		{UserID: 1, FullName: "Jane Doe"},
		{UserID: 2, FullName: "Bob"},
	}

	t.Run("full name resolves", func(t *testing.T) {
		spans := Resolve("ping @Jane Doe about this", members)
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Resolved)
		assert.Equal(t, uint64(1), spans[0].UserID)
	})

	t.Run("unknown name stays unresolved", func(t *testing.T) {
		spans := Resolve("cc @Nobody", members)
		require.Len(t, spans, 1)
		assert.False(t, spans[0].Resolved)
		assert.Zero(t, spans[0].UserID)
	})

	t.Run("case insensitive resolution", func(t *testing.T) {
		spans := Resolve("hey @bob", members)
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Resolved)
		assert.Equal(t, uint64(2), spans[0].UserID)
	})

	t.Run("no mentions", func(t *testing.T) {
		assert.Nil(t, Resolve("plain text", members))
	})
}
