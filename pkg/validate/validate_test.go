package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("user@example.com"))
	assert.True(t, IsEmail("a.b+c@sub.domain.ng"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("missing@tld"))
	assert.False(t, IsEmail(""))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+2348034848106"))
	assert.True(t, IsPhone("08034848106"))
	assert.False(t, IsPhone("123"))
	assert.False(t, IsPhone("phone"))
	assert.False(t, IsPhone(""))
}

func TestIsAccountNumber(t *testing.T) {
	assert.True(t, IsAccountNumber("2404815702"))
	assert.False(t, IsAccountNumber("2404815703"))
	assert.False(t, IsAccountNumber("12ab34"))
	assert.False(t, IsAccountNumber(""))
}

func TestIsPassword(t *testing.T) {
	assert.True(t, IsPassword("longenough"))
	assert.False(t, IsPassword("short"))
}
