package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/polybites/polybites-backend/pkg/database"
)

// Fills a development database with fake restaurants, menus, profiles,
// reviews and likes. Run after the server has applied its migrations.
func main() {
	restaurants := flag.Int("restaurants", 10, "number of restaurants to create")
	foodsPer := flag.Int("foods", 8, "menu items per restaurant")
	profiles := flag.Int("profiles", 25, "number of profiles to create")
	reviewsPer := flag.Int("reviews", 4, "reviews per menu item")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	db, err := database.NewPostgresConnection(database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "polybites"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	restaurantIDs := seedRestaurants(db, *restaurants)
	foodIDs := seedFoods(db, restaurantIDs, *foodsPer)
	profileIDs := seedProfiles(db, *profiles)
	reviewIDs := seedReviews(db, foodIDs, profileIDs, *reviewsPer)
	seedLikes(db, reviewIDs, profileIDs)

	log.Printf("Seeding complete: %d restaurants, %d foods, %d profiles, %d reviews",
		len(restaurantIDs), len(foodIDs), len(profileIDs), len(reviewIDs))
}

func seedRestaurants(db *sql.DB, count int) []int64 {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		var id int64
		err := db.QueryRow(
			`INSERT INTO restaurants (name, description, location, created_at)
			 VALUES ($1, $2, $3, NOW()) RETURNING id`,
			gofakeit.Company(),
			gofakeit.Sentence(8),
			gofakeit.City(),
		).Scan(&id)
		if err != nil {
			log.Printf("Error inserting restaurant: %v", err)
			continue
		}
		ids = append(ids, id)
	}
	log.Printf("Created %d restaurants", len(ids))
	return ids
}

func seedFoods(db *sql.DB, restaurantIDs []int64, perRestaurant int) []int64 {
	var ids []int64
	for _, restaurantID := range restaurantIDs {
		for i := 0; i < perRestaurant; i++ {
			var id int64
			err := db.QueryRow(
				`INSERT INTO foods (name, description, price, food_type, restaurant_id, created_at)
				 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id`,
				gofakeit.Dinner(),
				gofakeit.Sentence(6),
				gofakeit.Price(4, 30),
				gofakeit.RandomString([]string{"entree", "side", "dessert", "drink"}),
				restaurantID,
			).Scan(&id)
			if err != nil {
				log.Printf("Error inserting food: %v", err)
				continue
			}
			ids = append(ids, id)
		}
	}
	log.Printf("Created %d foods", len(ids))
	return ids
}

func seedProfiles(db *sql.DB, count int) []int64 {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		var id int64
		err := db.QueryRow(
			`INSERT INTO profiles (name, auth_id, created_at)
			 VALUES ($1, $2, NOW()) RETURNING id`,
			gofakeit.Name(),
			gofakeit.UUID(),
		).Scan(&id)
		if err != nil {
			log.Printf("Error inserting profile: %v", err)
			continue
		}
		ids = append(ids, id)
	}
	log.Printf("Created %d profiles", len(ids))
	return ids
}

func seedReviews(db *sql.DB, foodIDs, profileIDs []int64, perFood int) []int64 {
	if len(profileIDs) == 0 {
		return nil
	}
	var ids []int64
	for _, foodID := range foodIDs {
		for i := 0; i < perFood; i++ {
			userID := profileIDs[gofakeit.Number(0, len(profileIDs)-1)]
			var id int64
			err := db.QueryRow(
				`INSERT INTO food_reviews (user_id, food_id, rating, text, created_at)
				 VALUES ($1, $2, $3, $4, NOW()) RETURNING id`,
				userID,
				foodID,
				gofakeit.Number(1, 5),
				gofakeit.Sentence(12),
			).Scan(&id)
			if err != nil {
				log.Printf("Error inserting review: %v", err)
				continue
			}
			ids = append(ids, id)
		}
	}
	log.Printf("Created %d reviews", len(ids))
	return ids
}

func seedLikes(db *sql.DB, reviewIDs, profileIDs []int64) {
	if len(profileIDs) == 0 {
		return
	}
	created := 0
	for _, reviewID := range reviewIDs {
		likers := gofakeit.Number(0, 5)
		for i := 0; i < likers; i++ {
			userID := profileIDs[gofakeit.Number(0, len(profileIDs)-1)]
			// ON CONFLICT keeps duplicate picks from failing the run;
			// one like per user per review is enforced by the index
			res, err := db.Exec(
				`INSERT INTO likes (user_id, food_review_id, created_at)
				 VALUES ($1, $2, NOW())
				 ON CONFLICT (user_id, food_review_id) DO NOTHING`,
				userID,
				reviewID,
			)
			if err != nil {
				log.Printf("Error inserting like: %v", err)
				continue
			}
			if n, _ := res.RowsAffected(); n > 0 {
				created++
			}
		}
	}
	log.Printf("Created %d likes", created)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
