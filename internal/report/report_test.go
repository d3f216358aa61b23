package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageCount = regexp.MustCompile(`/Count (\d+)`)

func pages(t *testing.T, doc []byte) int {
	t.Helper()
	m := pageCount.FindSubmatch(doc)
	require.NotNil(t, m, "page tree missing")
	n, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	return n
}

func TestRenderList(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantPages int
		morePages bool
	}{
		{name: "empty list", lines: nil, wantPages: 1},
		{name: "short list", lines: []string{"Milch", "Eier (6)", "Äpfel"}, wantPages: 1},
		{name: "long list breaks pages", lines: manyLines(120), morePages: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := RenderList("Einkaufsliste", tt.lines)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

			if tt.morePages {
				assert.Greater(t, pages(t, doc), 1)
			} else {
				assert.Equal(t, tt.wantPages, pages(t, doc))
			}
		})
	}
}

func manyLines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}
	return out
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	tests := []struct {
		household string
		want      string
	}{
		{"Smiths", "shopping-list-smiths-20260304-050607.pdf"},
		{"Smith & Co", "shopping-list-smith-co-20260304-050607.pdf"},
		{"Müller!", "shopping-list-müller-20260304-050607.pdf"},
		{"  ", "shopping-list-household-20260304-050607.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.household, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.household, at))
		})
	}
}

func TestFileSink_Put(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewFileSinkFs(fs, "reports")

	loc, err := sink.Put(context.Background(), "../escape/list.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, "reports/list.pdf", loc)
	assert.Equal(t, "file", sink.Kind())

	data, err := afero.ReadFile(fs, "reports/list.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), data)
}

func TestFileSink_PutReadOnly(t *testing.T) {
	sink := NewFileSinkFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), "reports")

	_, err := sink.Put(context.Background(), "list.pdf", []byte("x"))
	assert.Error(t, err)
}

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		err     error
		wantLoc string
		wantErr bool
	}{
		{name: "with prefix", prefix: "shopping-lists/", wantLoc: "s3://bucket/shopping-lists/list.pdf"},
		{name: "without prefix", prefix: "", wantLoc: "s3://bucket/list.pdf"},
		{name: "upload fails", prefix: "p", err: errors.New("denied"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakePutObject{err: tt.err}
			sink := NewS3Sink(client, "bucket", tt.prefix)

			loc, err := sink.Put(context.Background(), "list.pdf", []byte("pdf"))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLoc, loc)
			assert.Equal(t, "bucket", *client.input.Bucket)
			assert.Equal(t, contentTypePDF, *client.input.ContentType)
			assert.Equal(t, []byte("pdf"), client.body)
		})
	}
}
