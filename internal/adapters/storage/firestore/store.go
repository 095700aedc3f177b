package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

// Store is a Firestore-backed domain.MessageStore. Messages live in a
// per-session subcollection ordered by an explicit sequence field; the next
// sequence is tracked on the session document.
//
// The read-increment of the sequence counter is not transactional on its own:
// it relies on the per-session serialization the chat service provides.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.client.Collection("sessions").Doc(string(id))
}

func (s *Store) messagesCol(id domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(id).Collection("messages")
}

type sessionDoc struct {
	NextSequence int64 `firestore:"next_sequence"`
}

type messageDoc struct {
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	Sequence  int64     `firestore:"sequence"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (s *Store) AppendMessage(ctx context.Context, sessionID domain.SessionID, role domain.Role, content string) error {
	var next int64 = 1

	snap, err := s.sessionDoc(sessionID).Get(ctx)
	switch {
	case err == nil:
		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("firestore decode sessionDoc: %w", err)
		}
		next = doc.NextSequence
	case status.Code(err) == codes.NotFound:
		// First append creates the session implicitly.
	default:
		return fmt.Errorf("firestore get session: %w", err)
	}

	msg := messageDoc{
		Role:      string(role),
		Content:   content,
		Sequence:  next,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.messagesCol(sessionID).NewDoc().Create(ctx, msg); err != nil {
		return fmt.Errorf("firestore append message: %w", err)
	}

	counter := map[string]interface{}{"next_sequence": next + 1}
	if _, err := s.sessionDoc(sessionID).Set(ctx, counter, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore advance sequence: %w", err)
	}

	return nil
}

func (s *Store) History(ctx context.Context, sessionID domain.SessionID) ([]domain.Message, error) {
	q := s.messagesCol(sessionID).OrderBy("sequence", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []domain.Message{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore list messages: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("firestore decode messageDoc: %w", err)
		}

		out = append(out, domain.Message{
			Role:      domain.Role(doc.Role),
			Content:   doc.Content,
			Sequence:  doc.Sequence,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) Clear(ctx context.Context, sessionID domain.SessionID) error {
	iter := s.messagesCol(sessionID).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return fmt.Errorf("firestore list messages for clear: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore delete message: %w", err)
		}
	}

	// Dropping the counter document resets the sequence for the next log.
	if _, err := s.sessionDoc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete session counter: %w", err)
	}

	return nil
}
