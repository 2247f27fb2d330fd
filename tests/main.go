package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saudeplus/config"
	"saudeplus/database"
	"saudeplus/models"
)

var psySpecialties = [][2]string{
	{"Psicanálise", "psicanalise"},
	{"TCC", "tcc"},
	{"Ansiedade", "ansiedade"},
	{"Depressão", "depressao"},
}

var nutSpecialties = [][2]string{
	{"Emagrecimento", "emagrecimento"},
	{"Esportiva", "esportiva"},
	{"Clínica", "clinica"},
	{"Vegana", "vegana"},
}

// Seeds the specialty catalogue and a couple of sample professionals.
// Idempotent: documents are upserted by slug / register code.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.MongoClient.Database(database.DatabaseName)
	specialtyColl := db.Collection("specialties")
	profColl := db.Collection("professionals")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	upsert := options.Update().SetUpsert(true)
	seed := func(profession string, entries [][2]string) {
		for _, e := range entries {
			s := models.Specialty{
				ID:         uuid.New().String(),
				Profession: profession,
				Name:       e[0],
				Slug:       e[1],
			}
			filter := bson.M{"slug": s.Slug, "profession": s.Profession}
			update := bson.M{
				"$set":         bson.M{"name": s.Name},
				"$setOnInsert": bson.M{"id": s.ID, "profession": s.Profession, "slug": s.Slug},
			}
			if _, err := specialtyColl.UpdateOne(ctx, filter, update, upsert); err != nil {
				log.Fatalf("Failed to seed specialty %s: %v", s.Slug, err)
			}
		}
	}
	seed("psychology", psySpecialties)
	seed("nutrition", nutSpecialties)

	rating := 4.8
	professionals := []models.Professional{
		{
			ID:             uuid.New().String(),
			FullName:       "Dra. Ana Pereira",
			Profession:     "psychology",
			RegisterCode:   "CRP 06/123456",
			City:           "São Paulo",
			State:          "SP",
			Bio:            "Psicóloga com 10+ anos de experiência em Psicanálise e TCC.",
			WhatsApp:       "+5511999990001",
			PriceCents:     8000,
			SessionMinutes: 50,
			Modalities:     []string{"online", "presencial"},
			Rating:         &rating,
			IsActive:       true,
			CreatedAt:      time.Now(),
		},
		{
			ID:             uuid.New().String(),
			FullName:       "Dr. Bruno Lima",
			Profession:     "nutrition",
			RegisterCode:   "CRN 3/45678",
			City:           "Campinas",
			State:          "SP",
			Bio:            "Nutricionista clínico com foco em emagrecimento saudável.",
			WhatsApp:       "+5519999990002",
			PriceCents:     6000,
			SessionMinutes: 50,
			Modalities:     []string{"online"},
			IsActive:       true,
			CreatedAt:      time.Now(),
		},
	}
	for _, p := range professionals {
		filter := bson.M{"register_code": p.RegisterCode}
		update := bson.M{"$setOnInsert": p}
		if _, err := profColl.UpdateOne(ctx, filter, update, upsert); err != nil {
			log.Fatalf("Failed to seed professional %s: %v", p.FullName, err)
		}
	}

	log.Println("Seed completed successfully!")
}
