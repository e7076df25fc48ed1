package luapat_test

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coregx/luapat"
)

func ExampleFind() {
	r, _ := luapat.Find("hello world", "o (w)")
	fmt.Println(r.Start, r.End, r.Captures[0].Text)
	// Output: 5 7 w
}

func ExampleMatch() {
	caps, _ := luapat.Match("key=value", "(%a+)=(%a+)")
	fmt.Println(caps[0].Text, caps[1].Text)
	// Output: key value
}

func ExampleGMatch() {
	it := luapat.GMatch("one two three", "%a+")
	for caps, err := range it.All() {
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(caps[0].Text)
	}
	// Output:
	// one
	// two
	// three
}

func ExampleGSub() {
	out, n, _ := luapat.GSub("hello world", "(%w+)", luapat.Template("<%1>"))
	fmt.Println(out, n)
	// Output: <hello> <world> 2
}

func ExampleFunc() {
	upper := luapat.Func(func(caps []luapat.Capture) (string, bool, error) {
		return strings.ToUpper(caps[0].Text), true, nil
	})
	out, _, _ := luapat.GSub("lua patterns", "%f[%a]%a", upper)
	fmt.Println(out)
	// Output: Lua Patterns
}

func ExampleWithTimeout() {
	pattern := strings.Repeat("a-", 20) + "b"
	subject := strings.Repeat("a", 30)

	_, err := luapat.Find(subject, pattern, luapat.WithTimeout(10*time.Millisecond))
	fmt.Println(errors.Is(err, luapat.ErrCancelled), errors.Is(err, luapat.ErrTimeLimit))
	// Output: true true
}
