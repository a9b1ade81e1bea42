package main

import (
	"context"
	"log"

	"github.com/artifaks/herbal-wisdom/internal/config"
	"github.com/artifaks/herbal-wisdom/internal/db"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/repository"
)

var sampleHerbs = []model.Herb{
	{
		Name:               "Chamomile",
		ScientificName:     "Matricaria chamomilla",
		Description:        "A gentle herb traditionally used for relaxation and digestive comfort.",
		Benefits:           []string{"calming", "digestive support", "sleep aid"},
		Category:           "Calming",
		PreparationMethods: []string{"tea", "tincture"},
		TreatsIllnesses:    []string{"insomnia", "indigestion", "anxiety"},
	},
	{
		Name:               "Echinacea",
		ScientificName:     "Echinacea purpurea",
		Description:        "A native prairie flower widely used to support the immune system.",
		Benefits:           []string{"immune support"},
		Category:           "Immune",
		PreparationMethods: []string{"tea", "tincture", "capsule"},
		TreatsIllnesses:    []string{"common cold", "flu"},
	},
	{
		Name:               "Ashwagandha",
		ScientificName:     "Withania somnifera",
		Description:        "An adaptogenic root from Ayurvedic tradition used for stress resilience.",
		Benefits:           []string{"stress relief", "energy"},
		Category:           "Adaptogen",
		PreparationMethods: []string{"powder", "capsule"},
		TreatsIllnesses:    []string{"stress", "fatigue"},
		IsPremium:          true,
	},
	{
		Name:               "Valerian",
		ScientificName:     "Valeriana officinalis",
		Description:        "A pungent root long used as a sleep aid and mild sedative.",
		Benefits:           []string{"sleep aid", "calming"},
		Category:           "Calming",
		PreparationMethods: []string{"tea", "tincture", "capsule"},
		TreatsIllnesses:    []string{"insomnia", "anxiety"},
		IsPremium:          true,
	},
}

var sampleStores = []model.Store{
	{
		Name:             "Green Leaf Apothecary",
		Description:      "Family-run herbal apothecary with custom tea blends.",
		Address:          "112 Maple Street",
		City:             "Portland",
		State:            "OR",
		Country:          "USA",
		PostalCode:       "97201",
		Latitude:         45.5152,
		Longitude:        -122.6784,
		Phone:            "+1 503 555 0101",
		HoursOfOperation: "Mon-Sat 9am-6pm",
		Specialties:      []string{"teas", "tinctures"},
		Rating:           4.7,
	},
	{
		Name:             "Sage & Stone Botanicals",
		Description:      "Bulk herbs, essential oils and herbalism workshops.",
		Address:          "48 Canyon Road",
		City:             "Santa Fe",
		State:            "NM",
		Country:          "USA",
		PostalCode:       "87501",
		Latitude:         35.6870,
		Longitude:        -105.9378,
		Phone:            "+1 505 555 0188",
		HoursOfOperation: "Tue-Sun 10am-5pm",
		Specialties:      []string{"bulk herbs", "essential oils", "workshops"},
		Rating:           4.5,
	},
	{
		Name:             "Harborside Herbs",
		Description:      "Waterfront shop stocking medicinal teas and salves.",
		Address:          "7 Wharf Lane",
		City:             "Portland",
		State:            "ME",
		Country:          "USA",
		PostalCode:       "04101",
		Latitude:         43.6591,
		Longitude:        -70.2568,
		Phone:            "+1 207 555 0144",
		Website:          "https://harborsideherbs.example.com",
		HoursOfOperation: "Mon-Fri 10am-6pm",
		Specialties:      []string{"teas", "salves"},
		Rating:           4.2,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	herbRepo := repository.NewHerbRepository(gormDB)

	var herbCount int64
	if err := gormDB.Model(&model.Herb{}).Count(&herbCount).Error; err != nil {
		log.Fatalf("Failed to count herbs: %v", err)
	}
	if herbCount == 0 {
		for i := range sampleHerbs {
			if err := herbRepo.Create(ctx, &sampleHerbs[i]); err != nil {
				log.Fatalf("Failed to seed herb %q: %v", sampleHerbs[i].Name, err)
			}
		}
		log.Printf("Seeded %d herbs", len(sampleHerbs))
	} else {
		log.Printf("Herbs table already has %d rows, skipping", herbCount)
	}

	var storeCount int64
	if err := gormDB.Model(&model.Store{}).Count(&storeCount).Error; err != nil {
		log.Fatalf("Failed to count stores: %v", err)
	}
	if storeCount == 0 {
		if err := gormDB.WithContext(ctx).Create(&sampleStores).Error; err != nil {
			log.Fatalf("Failed to seed stores: %v", err)
		}
		log.Printf("Seeded %d stores", len(sampleStores))
	} else {
		log.Printf("Stores table already has %d rows, skipping", storeCount)
	}

	log.Println("Seed completed successfully!")
}
