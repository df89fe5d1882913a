package logo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorMatchesWebFrontEnd(t *testing.T) {
	cases := map[string]string{
		"Acme":               "#5a0d1f",
		"Initech":            "#5ae059",
		"Globex Corporation": "#93cb16",
		"Ünïcode 😀":          "#b941fb",
		"":                   "#000000",
	}
	for name, want := range cases {
		assert.Equal(t, want, Color(name), "name %q", name)
	}
}

func TestColorIsDeterministic(t *testing.T) {
	for _, name := range []string{"Acme", "Umbrella", "Soylent", "Wayne Enterprises"} {
		first := Color(name)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, first)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Color(name))
		}
	}
}

func TestHashWraps(t *testing.T) {
	long := ""
	for i := 0; i < 64; i++ {
		long += "zebra"
	}
	assert.NotPanics(t, func() { Hash(long) })
	assert.Equal(t, Hash(long), Hash(long))
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "A", Initial("acme"))
	assert.Equal(t, "A", Initial("Acme"))
	assert.Equal(t, "É", Initial("école"))
	assert.Equal(t, "1", Initial("1password"))
	assert.Equal(t, "?", Initial(""))
}
