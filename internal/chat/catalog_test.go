package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk-backend/internal/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Menu.Options, 7)
	assert.Equal(t, []string{"Gate A", "Gate B", "Gate C"}, c.GateLabels)

	for _, opt := range c.Menu.Options {
		in, ok := c.button(opt.Value)
		assert.True(t, ok, "menu option %s has no button mapping", opt.Value)
		assert.NotEqual(t, types.IntentUnknown, in)
	}
}

func TestIsQuit(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		msg  string
		want bool
	}{
		{"quit", true},
		{"QUIT", true},
		{"  cancel  ", true},
		{"exit", true},
		{"End Chat", true},
		{"", false},
		{"cancel my booking", false},
		{"please exit", false},
		{"endchat", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsQuit(tt.msg), tt.msg)
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown button intent": `
quit_phrases: [quit]
buttons: {X: NOT_AN_INTENT}
menu: {message: hi, options: [{label: a, value: X}]}
`,
		"keyword to end chat": `
quit_phrases: [quit]
keywords: [{intent: END_CHAT, words: [bye]}]
menu: {message: hi, options: [{label: a, value: X}]}
`,
		"keyword without words": `
quit_phrases: [quit]
keywords: [{intent: REFUND, words: []}]
menu: {message: hi, options: [{label: a, value: X}]}
`,
		"empty menu": `
quit_phrases: [quit]
menu: {message: hi}
`,
		"no quit phrases": `
menu: {message: hi, options: [{label: a, value: X}]}
`,
		"bad yaml": "quit_phrases: [",
	}
	for name, doc := range tests {
		_, err := ParseCatalog([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestParseCatalogNormalises(t *testing.T) {
	c, err := ParseCatalog([]byte(`
quit_phrases: ["  Bye Now "]
keywords: [{intent: REFUND, words: [MoneyBack]}]
menu: {message: hi, options: [{label: a, value: REFUND}]}
`))
	require.NoError(t, err)
	assert.True(t, c.IsQuit("bye now"))

	in, ok := c.keyword("I want my moneyback")
	assert.True(t, ok)
	assert.Equal(t, types.IntentRefund, in)
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.Menu.Options, 7)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
quit_phrases: [stop]
buttons: {HOME: GREETING}
menu: {message: Welcome, options: [{label: Home, value: HOME}]}
gate_labels: [North]
`), 0o600))
	c, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.True(t, c.IsQuit("STOP"))
	assert.False(t, c.IsQuit("quit"))
	assert.Equal(t, []string{"North"}, c.GateLabels)
}

func TestEngineWithCustomCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(`
quit_phrases: [stop]
buttons: {HOME: GREETING}
menu: {message: Welcome, options: [{label: Home, value: HOME}]}
`))
	require.NoError(t, err)
	e := NewEngine(fixtureStore(t), nil, Options{Catalog: c})

	resp := turnOK(t, e, types.ChatTurnRequest{Intent: "GREETING"})
	assert.Equal(t, "Welcome", resp.Message)
	assert.Len(t, resp.Options, 1)

	resp = turnOK(t, e, types.ChatTurnRequest{Message: "stop"})
	assert.Nil(t, resp.NewState)
}
