package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/ward-admin/config"
	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

type seedUser struct {
	email string
	name  string
	role  entity.Role
	wards []string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := []seedUser{
		{email: "superadmin@example.com", name: "Super Admin", role: entity.RoleSuperAdmin},
		{email: "manager.east@example.com", name: "East Wing Manager", role: entity.RoleWardManager, wards: []string{"E1", "E2"}},
		{email: "nurse.sato@example.com", name: "Sato Hanako", role: entity.RoleStaff},
		{email: "new.hire@example.com", name: "New Hire", role: entity.RolePending, wards: []string{"W3"}},
		{email: "applicant@example.com", name: "Applicant", role: entity.RolePending},
	}

	var superID int64
	for _, u := range users {
		var id int64
		err = db.QueryRow(`
			INSERT INTO users (email, password_hash, name, user_type)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, user_type = EXCLUDED.user_type
			RETURNING id
		`, u.email, hash, u.name, string(u.role)).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		if u.role == entity.RoleSuperAdmin {
			superID = id
		}
		for _, code := range u.wards {
			if _, err := db.Exec(`
				INSERT INTO ward_managers (user_id, ward_code, creator_id)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id, ward_code) DO NOTHING
			`, id, code, superID); err != nil {
				log.Fatalf("failed to assign ward %s to %s: %v", code, u.email, err)
			}
		}
		fmt.Printf("seeded user: id=%d email=%s role=%s wards=%v\n", id, u.email, u.role.Label(), u.wards)
	}
	fmt.Printf("all seeded users share password=%s\n", password)
}
