package backend

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected string) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if got := string(scratch[:n]); got != expected {
		t.Errorf("expected read to yield %q, got: %q", expected, got)
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReaderHoldsBackPartialRows(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("left,mean,right\n")
	buf.WriteString("1,2,3\n")
	l := NewLineReader(buf)
	expectToRead(t, l, "left,mean,right\n")
	expectToRead(t, l, "1,2,3\n")

	buf.WriteString("4,5")
	expectReadEOF(t, l)
	buf.WriteString(",6\n")
	expectToRead(t, l, "4,5,6\n")

	buf.WriteString("7")
	expectReadEOF(t, l)
	buf.WriteString(",8")
	expectReadEOF(t, l)
	buf.WriteString(",9\n10")
	expectToRead(t, l, "7,8,9\n")
}

func TestLineReaderFeedsCSV(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	r := csv.NewReader(NewLineReader(buf))
	buf.WriteString("1,2,3\n4,5")
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("expected first row, got error: %v", err)
	}
	if len(rec) != 3 || rec[2] != "3" {
		t.Errorf("unexpected first row %q", rec)
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF while the second row is incomplete, got %v", err)
	}
	buf.WriteString(",6\n")
	rec, err = r.Read()
	if err != nil {
		t.Fatalf("expected second row once complete, got error: %v", err)
	}
	if rec[0] != "4" || rec[2] != "6" {
		t.Errorf("unexpected second row %q", rec)
	}
}

func TestLineReaderSplitsLongLines(t *testing.T) {
	buf := bytes.NewBufferString("1.25,2.5,3.75\n")
	l := NewLineReader(buf)
	var got []byte
	scratch := make([]byte, 4)
	for {
		n, err := l.Read(scratch)
		got = append(got, scratch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if string(got) != "1.25,2.5,3.75\n" {
		t.Errorf("expected the whole line across small reads, got %q", got)
	}
}
