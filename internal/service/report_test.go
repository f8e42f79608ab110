package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fake Storage
// =============================================================================

type fakeStorage struct {
	objects map[string]string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (f *fakeStorage) Put(ctx context.Context, key string, data io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return err
	}
	f.objects[key] = buf.String()
	return nil
}

func (f *fakeStorage) URL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "http://localhost:8080/files/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

// =============================================================================
// Generate
// =============================================================================

func TestReportGenerate(t *testing.T) {
	docs := newFakeDocStore()
	files := newFakeStorage()
	svc := NewReportService(docs, report.NewTextGenerator(), files, newTestLogger())

	insp := newTestService(t, docs)
	doc := validDoc(insp, t)
	docs.docs[doc.ID] = doc

	result, err := svc.Generate(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, "txt", result.Format)
	assert.Equal(t, "inspections/"+doc.ID+"/report.txt", result.Key)
	assert.Equal(t, "http://localhost:8080/files/"+result.Key, result.URL)
	assert.Positive(t, result.Size)

	body, ok := files.objects[result.Key]
	require.True(t, ok, "artifact must be uploaded under the returned key")
	assert.Contains(t, body, "Pier 4 warehouse")
	assert.Equal(t, int64(len(body)), result.Size)
}

func TestReportGenerate_DocumentMissing(t *testing.T) {
	svc := NewReportService(newFakeDocStore(), report.NewTextGenerator(), newFakeStorage(), newTestLogger())

	_, err := svc.Generate(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestReportGenerate_RegenerationOverwrites(t *testing.T) {
	docs := newFakeDocStore()
	files := newFakeStorage()
	svc := NewReportService(docs, report.NewTextGenerator(), files, newTestLogger())

	insp := newTestService(t, docs)
	doc := validDoc(insp, t)
	docs.docs[doc.ID] = doc

	first, err := svc.Generate(context.Background(), doc.ID)
	require.NoError(t, err)

	doc.ClientInfo.Location = "Pier 9 depot"
	docs.docs[doc.ID] = doc

	second, err := svc.Generate(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key, "a document has one report slot")
	require.Len(t, files.objects, 1)
	assert.Contains(t, files.objects[second.Key], "Pier 9 depot")
}

func TestDelete_RemovesReportArtifact(t *testing.T) {
	docs := newFakeDocStore()
	files := newFakeStorage()
	reports := NewReportService(docs, report.NewTextGenerator(), files, newTestLogger())

	insp := NewInspectionService(docs, nil, reports, newTestLogger()).(*inspectionService)
	insp.now = func() time.Time { return time.UnixMilli(1700000000000) }

	doc := validDoc(insp, t)
	docs.docs[doc.ID] = doc

	_, err := reports.Generate(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, files.objects, 1)

	require.NoError(t, insp.Delete(context.Background(), doc.ID))
	assert.Empty(t, files.objects, "deleting a document removes its report")
	assert.NotContains(t, docs.docs, doc.ID)
}

func TestReportGenerate_ValidatesClientInfoBeforeUpload(t *testing.T) {
	docs := newFakeDocStore()
	files := newFakeStorage()
	svc := NewReportService(docs, report.NewTextGenerator(), files, newTestLogger())

	insp := newTestService(t, docs)
	doc := validDoc(insp, t)
	doc.ClientInfo.Location = ""
	docs.docs[doc.ID] = doc

	_, err := svc.Generate(context.Background(), doc.ID)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Empty(t, files.objects, "nothing may be uploaded for an invalid document")
}
