package search

import (
	"fmt"
	"strings"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

// entryFor derives the index entry for an event. Events without an owner are
// indexed under the global scope; the entry id is prefixed with the scope so
// ids stay unique across ownership partitions.
func entryFor(event events.Event, embedding []float32) vectorstore.Entry {
	return vectorstore.Entry{
		ID:        event.Scope() + "_" + event.ID,
		Embedding: embedding,
		Metadata:  metadataFor(event),
		Document:  documentText(event),
	}
}

// documentText builds the human-readable concatenation of event fields the
// embedding is computed from. Field order is fixed so rebuilding from an
// unchanged catalog reproduces the same documents.
func documentText(event events.Event) string {
	freeFlag := "No"
	if event.IsFree {
		freeFlag = "Yes"
	}

	return fmt.Sprintf(
		"Title: %s. Description: %s. Category: %s. Location: %s. Tags: %s. "+
			"Organizer: %s. Start: %s. End: %s. Price: %s. Free: %s. URL: %s",
		event.Title,
		event.Description,
		event.Category.Name,
		event.Location,
		strings.Join(event.Tags, ", "),
		event.OrganizerName(),
		event.StartDateTime,
		event.EndDateTime,
		event.Price,
		freeFlag,
		event.URL,
	)
}

// metadataFor flattens an event into the primitive-only projection returned
// by searches. No nested values: the store's filter language only matches
// primitives.
func metadataFor(event events.Event) vectorstore.Metadata {
	return vectorstore.Metadata{
		"user_id":       event.Scope(),
		"_id":           event.ID,
		"title":         event.Title,
		"location":      event.Location,
		"createdAt":     event.CreatedAt,
		"imageUrl":      event.ImageURL,
		"startDateTime": event.StartDateTime,
		"endDateTime":   event.EndDateTime,
		"price":         event.Price,
		"isFree":        event.IsFree,
		"category":      event.Category.Name,
		"organizer":     event.OrganizerName(),
		"tags":          strings.Join(event.Tags, ", "),
	}
}
