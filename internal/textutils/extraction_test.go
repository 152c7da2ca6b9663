package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUPIHandle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Paid Rs 50 to dad@okaxis via UPI", "dad@okaxis"},
		{"dotted name", "Received from ravi.kumar-1@ybl Ref 123", "ravi.kumar-1@ybl"},
		{"trailing period", "Sent to shop@paytm.", "shop@paytm"},
		{"none", "Paid Rs 50 to Dad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUPIHandle(tt.text))
		})
	}
}

func TestCollapseDuplicateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dad: Dad", "Dad"},
		{"DAD:dad", "DAD"},
		{"Mom Mom", "Mom"},
		{"Ravi Kumar Ravi Kumar", "Ravi Kumar"},
		{"Ravi Kumar", "Ravi Kumar"},
		{"Dad: Mom", "Dad: Mom"},
		{"  Mom   Mom ", "Mom"},
		{"Swiggy", "Swiggy"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseDuplicateName(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "₹500 paid", Sanitize("â‚¹500 paid"))
	assert.Equal(t, "Rs 50 paid", Sanitize("Rs 50 paid"))
	assert.Equal(t, "abc", Sanitize("abc"))
	assert.NotPanics(t, func() { Sanitize("bad \xff byte") })
}

func TestCasingHelpers(t *testing.T) {
	assert.Equal(t, "Ice cream", UpperFirst("ice cream"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "Big Bazaar", TitleCase("big bazaar"))
	assert.True(t, IsCapitalized("Dad"))
	assert.False(t, IsCapitalized("dad"))
	assert.False(t, IsCapitalized("500"))
}

func TestSmallHelpers(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \n b\t c "))
	assert.Equal(t, "Dad", TrimPunct("Dad,"))
	assert.Equal(t, "Dad", TrimPunct("(Dad)."))
	assert.True(t, ContainsAny("paid to dad", "sent", "paid"))
	assert.False(t, ContainsAny("hello", "", "bye"))
}
