package main

import (
	"log"

	"spiritual-guidance-be/internal/config"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/pkg/database"
	"spiritual-guidance-be/pkg/embedding"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Service Catalog...")

	serviceTypes := []model.ServiceType{
		{Name: "tarot_reading", Description: "A tarot card reading focused on your question", CreditsRequired: 5, Price: 25.00, Enabled: true, FollowUpTemplate: "session_followup_v1"},
		{Name: "vedic_astrology", Description: "Vedic chart interpretation from your birth details", CreditsRequired: 10, Price: 45.00, Enabled: true, FollowUpTemplate: "session_followup_v1"},
		{Name: "dream_analysis", Description: "Symbolic interpretation of a recent dream", CreditsRequired: 3, Price: 15.00, Enabled: true, FollowUpTemplate: "session_followup_v1"},
		{Name: "spiritual_qa", Description: "Open spiritual guidance on any life question", CreditsRequired: 2, Price: 10.00, Enabled: true, FollowUpTemplate: "session_followup_v1"},
	}

	for _, st := range serviceTypes {
		var existing model.ServiceType
		if err := db.Where("name = ?", st.Name).First(&existing).Error; err == nil {
			log.Printf("Service type '%s' already exists, skipping...", st.Name)
			continue
		}

		if err := db.Create(&st).Error; err != nil {
			log.Printf("Error creating service type '%s': %v", st.Name, err)
		} else {
			log.Printf("Created service type: %s (%d credits)", st.Name, st.CreditsRequired)
		}
	}

	log.Println("Seeding Knowledge Passages...")
	seedKnowledge(db, cfg)

	log.Println("✅ Seeding completed!")
}

type passageSeed struct {
	Topic   string
	Content string
}

var passages = []passageSeed{
	{"tarot", "The Tower card signals sudden upheaval that clears the ground for something truer. Rather than resisting the collapse, the reading invites you to notice which structures in your life were already unstable."},
	{"tarot", "When the Star follows a difficult spread it points to renewal. Small consistent rituals, a morning intention or an evening gratitude practice, help the seeker stay open to that healing current."},
	{"astrology", "A strong Saturn influence often shows up as delay and discipline. The classical remedy is patience made practical: commit to one slow endeavour and honor it daily rather than seeking quick openings."},
	{"astrology", "The Moon sign describes the emotional weather a person carries. A water Moon seeks depth and privacy to recharge, while a fire Moon restores itself through movement and expression."},
	{"astrology", "Nakshatras refine the Moon sign into twenty-seven lunar mansions. Magha natives carry ancestral themes and often find peace through honoring family lineage and tradition."},
	{"dreams", "Dreams of water usually mirror the dreamer's emotional state. Calm water suggests acceptance, while turbulent or rising water marks feelings that have not yet found a safe channel in waking life."},
	{"dreams", "Recurring dreams are unfinished conversations with oneself. Journaling the dream immediately after waking, without interpretation at first, tends to loosen the repetition within weeks."},
	{"practice", "Meditation on the breath is the most widely recommended grounding practice. Even five minutes of slow exhalation signals the nervous system that it is safe to release vigilance."},
	{"practice", "Lighting a candle with a spoken intention is a simple focusing ritual. The value is not in the flame but in the moment of undivided attention the gesture creates."},
	{"guidance", "Honest guidance acknowledges uncertainty. When the signs are mixed, naming the ambiguity and suggesting a period of observation serves the seeker better than forced clarity."},
}

func seedKnowledge(db *gorm.DB, cfg *config.Config) {
	var count int64
	if err := db.Model(&model.KnowledgePassage{}).Count(&count).Error; err == nil && count > 0 {
		log.Printf("Knowledge base already has %d passages, skipping...", count)
		return
	}

	provider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("Error: Failed to initialize embedding provider: %v", err)
	}

	for i, p := range passages {
		res, err := provider.Generate(p.Content, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("Error embedding passage %d (%s): %v", i, p.Topic, err)
			continue
		}

		row := model.KnowledgePassage{
			Topic:     p.Topic,
			Content:   p.Content,
			Embedding: pgvector.NewVector(res.Embedding.Values),
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Error creating passage %d (%s): %v", i, p.Topic, err)
		} else {
			log.Printf("Created passage %d [%s]", i, p.Topic)
		}
	}
}
