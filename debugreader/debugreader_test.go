package debugreader

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"
)

func TestReader(t *testing.T) {
	out := &bytes.Buffer{}
	l := log.New(out, "", 0)

	r := NewReader(strings.NewReader("solid"), l)
	all, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(all) != "solid" {
		t.Error("data changed:", string(all))
	}

	s := out.String()
	if !strings.Contains(s, "read at 0:") {
		t.Error("missing first read:", s)
	}
	if !strings.Contains(s, "data: 73 6f 6c 69 64") {
		t.Error("missing data dump:", s)
	}
	if !strings.Contains(s, "read at 5:") || !strings.Contains(s, "EOF") {
		t.Error("missing EOF read:", s)
	}
}

// ex: ts=2
