package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with one user per role for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing users")
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		seeds := []user.User{
			{Email: "admin@buildtrack.dev", Name: "Ada Admin", Role: internal.RoleAdmin},
			{Email: "manager@buildtrack.dev", Name: "Mira Manager", Role: internal.RoleProjectManager},
			{Email: "engineer@buildtrack.dev", Name: "Evan Engineer", Role: internal.RoleSiteEngineer},
			{Email: "hr@buildtrack.dev", Name: "Hana HR", Role: internal.RoleHRExecutive},
			{Email: "finance@buildtrack.dev", Name: "Finn Finance", Role: internal.RoleFinanceOfficer},
			{Email: "client@buildtrack.dev", Name: "Cleo Client", Role: internal.RoleClient},
			{Email: "worker@buildtrack.dev", Name: "Wes Worker", Role: internal.RoleWorker},
		}

		for _, seed := range seeds {
			var exists int64
			if err := db.Model(&user.User{}).Where("email = ?", seed.Email).Count(&exists).Error; err != nil {
				log.Fatalf("failed to check for %s: %v", seed.Email, err)
			}
			if exists > 0 {
				fmt.Printf("user %s already exists, skipping\n", seed.Email)
				continue
			}

			seed.PasswordHash = string(hash)
			seed.IsActive = true
			if err := db.Create(&seed).Error; err != nil {
				log.Fatalf("failed to seed %s: %v", seed.Email, err)
			}
			fmt.Printf("seeded %s (%s)\n", seed.Email, seed.Role)
		}
	},
}
