package indexer

import (
	"fmt"
	"strings"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
	"github.com/google/uuid"
)

// chunkPointID derives a stable vector point id from the record and the
// chunk's position, so re-indexing overwrites instead of duplicating.
func chunkPointID(recordID string, order int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d", recordID, order))).String()
}

// ChunkRecord splits a record's content into embedding-sized chunks.
func ChunkRecord(rec recordModel.SourceRecord) []recordModel.RecordChunk {
	texts := splitTextIntoChunks(rec.Content, config.ChunkSize, config.ChunkOverlap)

	chunks := make([]recordModel.RecordChunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, recordModel.RecordChunk{
			Record:     rec,
			ChunkId:    chunkPointID(rec.Id, i),
			Chunk:      text,
			ChunkOrder: i,
		})
	}
	return chunks
}

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	// If text is already small enough, just return it
	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			break
		}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		// If adding the part exceeds the limit
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Handle overlap: start the next chunk with the end of the previous one
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}
