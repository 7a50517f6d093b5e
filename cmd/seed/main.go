// Seeds the salon database with the default category and service catalog.
// Run once after the server has created the schema.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type seedService struct {
	Name     string
	Price    float64
	Category string
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "")
	dbName := getEnv("DB_NAME", "beauty_salon_db")
	dbSSLMode := getEnv("DB_SSL_MODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	// Skip seeding if the catalog already has entries
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
		log.Fatal("Failed to check services count:", err)
	}
	if count > 0 {
		log.Printf("⚠️  Services already exist (%d services found). Skipping insertion.", count)
		return
	}

	services := []seedService{
		{Name: "Lazer Epilasyon - Tüm Vücut", Price: 1500.00, Category: "Lazer Epilasyon"},
		{Name: "Lazer Epilasyon - Yarım Vücut", Price: 900.00, Category: "Lazer Epilasyon"},
		{Name: "Lazer Epilasyon - Bölgesel", Price: 400.00, Category: "Lazer Epilasyon"},
		{Name: "Klasik Cilt Bakımı", Price: 600.00, Category: "Cilt Bakımı"},
		{Name: "Hydrafacial", Price: 1200.00, Category: "Cilt Bakımı"},
		{Name: "Leke Bakımı", Price: 800.00, Category: "Cilt Bakımı"},
		{Name: "Manikür", Price: 250.00, Category: "El ve Ayak Bakımı"},
		{Name: "Pedikür", Price: 300.00, Category: "El ve Ayak Bakımı"},
		{Name: "Kalıcı Oje", Price: 350.00, Category: "El ve Ayak Bakımı"},
		{Name: "Kirpik Lifting", Price: 500.00, Category: "Kirpik ve Kaş"},
		{Name: "Kaş Laminasyonu", Price: 450.00, Category: "Kirpik ve Kaş"},
		{Name: "İpek Kirpik", Price: 700.00, Category: "Kirpik ve Kaş"},
		{Name: "Bölgesel İncelme", Price: 1000.00, Category: "Vücut Bakımı"},
		{Name: "Selülit Masajı", Price: 550.00, Category: "Vücut Bakımı"},
	}

	log.Println("🚀 Starting to insert catalog...")

	now := time.Now()
	categoryIDs := make(map[string]int)
	insertedCount := 0

	for _, service := range services {
		categoryID, ok := categoryIDs[service.Category]
		if !ok {
			err := db.QueryRow(
				`INSERT INTO service_categories (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
				service.Category, now, now,
			).Scan(&categoryID)
			if err != nil {
				log.Fatalf("❌ Failed to insert category '%s': %v", service.Category, err)
			}
			categoryIDs[service.Category] = categoryID
			log.Printf("✅ Category created: %s (ID: %d)", service.Category, categoryID)
		}

		_, err := db.Exec(
			`INSERT INTO services (name, price, category_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			service.Name, service.Price, categoryID, now, now,
		)
		if err != nil {
			log.Printf("❌ Failed to insert service '%s': %v", service.Name, err)
		} else {
			log.Printf("✅ Successfully inserted: %s (%s)", service.Name, service.Category)
			insertedCount++
		}
	}

	log.Printf("🎉 Insertion completed! %d out of %d services inserted successfully", insertedCount, len(services))

	// Verify the insertion
	rows, err := db.Query(`
		SELECT s.id, s.name, s.price, c.name
		FROM services s
		JOIN service_categories c ON c.id = s.category_id
		ORDER BY s.id`)
	if err != nil {
		log.Fatal("Failed to query services:", err)
	}
	defer rows.Close()

	log.Println("📋 Seeded Services:")
	for rows.Next() {
		var id int
		var name, category string
		var price float64
		if err := rows.Scan(&id, &name, &price, &category); err != nil {
			log.Printf("Failed to scan row: %v", err)
			continue
		}
		log.Printf("%d | %s | %.2f | %s", id, name, price, category)
	}
	if err := rows.Err(); err != nil {
		log.Fatal("Error iterating over rows:", err)
	}

	log.Println("✨ Catalog seeding completed successfully!")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
