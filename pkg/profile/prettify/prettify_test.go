package prettify_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfview/perfview/pkg/profile/prettify"
)

func TestSymbol(t *testing.T) {
	for i, test := range []struct {
		raw      string
		expected string
	}{{
		raw:      "std::vector<int, std::allocator<int> >::push_back(int&&)",
		expected: "std::vector<int>::push_back(int&&)",
	}, {
		// no space between the closing angle brackets
		raw:      "std::vector<int, std::allocator<int>>::push_back(int&&)",
		expected: "std::vector<int>::push_back(int&&)",
	}, {
		raw:      "std::map<int, double, std::less<int>, std::allocator<std::pair<int const, double> > >::operator[](int const&)",
		expected: "std::map<int, double>::operator[](int const&)",
	}, {
		raw:      "std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char> >::basic_string(char const*)",
		expected: "std::string::string(char const*)",
	}, {
		raw:      "std::__1::basic_string<wchar_t, std::__1::char_traits<wchar_t>, std::__1::allocator<wchar_t> >::~basic_string()",
		expected: "std::wstring::~wstring()",
	}, {
		// custom character type keeps the basic_ prefix
		raw:      "std::basic_string<char16_t, std::char_traits<char16_t>, std::allocator<char16_t> >::size() const",
		expected: "std::basic_string<char16_t>::size() const",
	}, {
		// nested template arguments are shortened recursively
		raw:      "std::vector<std::basic_string<char, std::char_traits<char>, std::allocator<char> >, std::allocator<std::basic_string<char> > >::size() const",
		expected: "std::vector<std::string>::size() const",
	}, {
		raw:      "std::unordered_map<unsigned long, void*, std::hash<unsigned long>, std::equal_to<unsigned long>, std::allocator<std::pair<unsigned long const, void*> > >::find(unsigned long const&)",
		expected: "std::unordered_map<unsigned long, void*>::find(unsigned long const&)",
	}, {
		raw:      "std::allocator<int>::allocate(unsigned long)",
		expected: "std::allocator<...>::allocate(unsigned long)",
	}, {
		// template arguments after whitespace and parentheses count as
		// boundaries too
		raw:      "void foo(std::vector<int, std::allocator<int> > const&)",
		expected: "void foo(std::vector<int> const&)",
	}, {
		// no std:: at a boundary: leave the name alone
		raw:      "main",
		expected: "main",
	}, {
		raw:      "mystd::vector<int, mystd::allocator<int> >::clear()",
		expected: "mystd::vector<int, mystd::allocator<int> >::clear()",
	}, {
		// nothing after the namespace matches a rule
		raw:      "std::sort(int*, int*)",
		expected: "std::sort(int*, int*)",
	}, {
		// already shortened names pass through unchanged
		raw:      "std::vector<int>::push_back(int&&)",
		expected: "std::vector<int>::push_back(int&&)",
	}, {
		// truncated symbols must not be mangled further
		raw:      "std::vector<int, std::alloc",
		expected: "std::vector<int, std::alloc",
	}, {
		raw:      "",
		expected: "",
	}} {
		t.Run(fmt.Sprintf("prettify/%d", i), func(t *testing.T) {
			require.Equal(t, test.expected, prettify.Symbol(test.raw))

			// shortening is idempotent
			require.Equal(t, test.expected, prettify.Symbol(test.expected))
		})
	}
}

func TestSymbolReturnsInputWhenUnchanged(t *testing.T) {
	raw := "some_function(int)"
	require.Equal(t, raw, prettify.Symbol(raw))
}
