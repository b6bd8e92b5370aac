package services

import (
	"log"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ResumeEntities holds named entities found in a resume.
type ResumeEntities struct {
	Name          string   `json:"name,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	Locations     []string `json:"locations,omitempty"`
}

type EntityExtractor interface {
	ExtractEntities(text string) ResumeEntities
}

// entityChunkRunes bounds the text handed to a single prose document.
const entityChunkRunes = 1000

type proseEntityExtractor struct {
	maxChars int
}

// NewEntityExtractor returns a prose-backed extractor. Only the first
// maxChars runes of a resume are analysed; contact details live at the top.
func NewEntityExtractor(maxChars int) EntityExtractor {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &proseEntityExtractor{maxChars: maxChars}
}

// ExtractEntities implements EntityExtractor. Failures yield an empty result.
func (p *proseEntityExtractor) ExtractEntities(text string) (entities ResumeEntities) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Entity extraction failed: %v", r)
			entities = ResumeEntities{}
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return ResumeEntities{}
	}
	if runes := []rune(text); len(runes) > p.maxChars {
		text = string(runes[:p.maxChars])
	}

	seen := make(map[string]bool)
	for _, chunk := range ChunkText(text, entityChunkRunes) {
		doc, err := prose.NewDocument(chunk)
		if err != nil {
			log.Printf("⚠️  Entity extraction failed: %v", err)
			return ResumeEntities{}
		}

		for _, ent := range doc.Entities() {
			value := strings.TrimSpace(ent.Text)
			key := ent.Label + "|" + strings.ToLower(value)
			if value == "" || seen[key] {
				continue
			}
			seen[key] = true

			switch ent.Label {
			case "PERSON":
				if entities.Name == "" {
					entities.Name = value
				}
			case "ORG":
				entities.Organizations = append(entities.Organizations, value)
			case "GPE", "LOC":
				entities.Locations = append(entities.Locations, value)
			}
		}
	}
	return entities
}
