package document

import (
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// State is one open document: its text, the version the client last
// reported, and the schema URL its content declares.
type State struct {
	Text      Text
	Version   int32
	SchemaURL string
}

// Store tracks open documents by URI. Writers for a URI are serialized by
// the store lock; readers get value snapshots, so a reader never observes a
// partially applied edit batch.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*State
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*State)}
}

// Open registers a document. Reopening with an older version than the one
// on record is ignored; the same or a newer version replaces the state.
func (st *Store) Open(uri, text string, version int32) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.docs[uri]; ok && version < existing.Version {
		return
	}
	st.docs[uri] = &State{
		Text:      NewText(text),
		Version:   version,
		SchemaURL: ExtractSchemaURL(uri, text),
	}
}

// Change applies a didChange batch in order. Each element is either a
// protocol.TextDocumentContentChangeEvent (ranged) or a
// protocol.TextDocumentContentChangeEventWhole (full replacement). The
// schema URL is recomputed once the whole batch is applied.
func (st *Store) Change(uri string, version int32, changes []any) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	state, ok := st.docs[uri]
	if !ok {
		return fmt.Errorf("document not open: %s", uri)
	}

	text := state.Text
	for _, raw := range changes {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = NewText(change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = NewText(change.Text)
				continue
			}
			start := text.OffsetAt(change.Range.Start)
			end := text.OffsetAt(change.Range.End)
			text = text.Edit(start, end, change.Text)
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}

	state.Text = text
	state.Version = version
	state.SchemaURL = ExtractSchemaURL(uri, text.String())
	return nil
}

// Close drops a document.
func (st *Store) Close(uri string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.docs, uri)
}

// Snapshot returns a coherent copy of the document state for readers.
func (st *Store) Snapshot(uri string) (State, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	state, ok := st.docs[uri]
	if !ok {
		return State{}, false
	}
	return *state, true
}

// Version returns the current version of a document.
func (st *Store) Version(uri string) (int32, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	state, ok := st.docs[uri]
	if !ok {
		return 0, false
	}
	return state.Version, true
}
