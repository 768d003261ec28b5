package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/integration-tracker/internal/auth"
	taskdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/task"
	templatedm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/template"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin user and the template catalog",
	Long:  `Idempotent bootstrap: creates the initial admin account, starter workstreams and default task templates if they do not exist yet.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := openDatabases(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		var count int64
		db.Model(&userdm.User{}).Where("username = ?", "admin").Count(&count)
		if count == 0 {
			hash, err := auth.HashPassword("changeme123")
			if err != nil {
				log.Fatalf("failed to hash password: %v", err)
			}
			admin := &userdm.User{
				Username:     "admin",
				PasswordHash: hash,
				DisplayName:  "Administrator",
				Role:         auth.RoleAdmin,
				Active:       true,
				CreatedAt:    time.Now(),
			}
			if err := db.Create(admin).Error; err != nil {
				log.Fatalf("failed to seed admin user: %v", err)
			}
			fmt.Println("Seeded admin user (username: admin, password: changeme123 - change it)")
		} else {
			fmt.Println("admin user already exists")
		}

		workstreams := []templatedm.Workstream{
			{Name: "Network", SortOrder: 1, Active: true},
			{Name: "Identity & Access", SortOrder: 2, Active: true},
			{Name: "Email & Collaboration", SortOrder: 3, Active: true},
			{Name: "Applications", SortOrder: 4, Active: true},
			{Name: "Infrastructure", SortOrder: 5, Active: true},
			{Name: "Security & Compliance", SortOrder: 6, Active: true},
		}
		for _, ws := range workstreams {
			db.Model(&templatedm.Workstream{}).Where("name = ?", ws.Name).Count(&count)
			if count > 0 {
				continue
			}
			ws.CreatedAt = time.Now()
			if err := db.Create(&ws).Error; err != nil {
				log.Fatalf("failed to seed workstream %s: %v", ws.Name, err)
			}
			fmt.Println("Seeded workstream:", ws.Name)
		}

		templates := []templatedm.TaskTemplate{
			{TaskID: "NET-001", Workstream: "Network", Name: "Document current network topology", Priority: "High", SortOrder: 1},
			{TaskID: "NET-002", Workstream: "Network", Name: "Establish site-to-site VPN", Priority: "High", SortOrder: 2},
			{TaskID: "NET-003", Workstream: "Network", Name: "Plan IP address space consolidation", Priority: "Medium", SortOrder: 3},
			{TaskID: "IAM-001", Workstream: "Identity & Access", Name: "Inventory identity providers and directories", Priority: "High", SortOrder: 1},
			{TaskID: "IAM-002", Workstream: "Identity & Access", Name: "Set up cross-domain trust or federation", Priority: "High", SortOrder: 2},
			{TaskID: "EML-001", Workstream: "Email & Collaboration", Name: "Plan mailbox migration", Priority: "Medium", SortOrder: 1},
			{TaskID: "APP-001", Workstream: "Applications", Name: "Build application inventory with owners", Priority: "High", SortOrder: 1},
			{TaskID: "APP-002", Workstream: "Applications", Name: "Identify overlapping systems for retirement", Priority: "Medium", SortOrder: 2},
			{TaskID: "INF-001", Workstream: "Infrastructure", Name: "Inventory servers and hosting contracts", Priority: "Medium", SortOrder: 1},
			{TaskID: "SEC-001", Workstream: "Security & Compliance", Name: "Run security posture assessment", Priority: "High", SortOrder: 1},
			{TaskID: "SEC-002", Workstream: "Security & Compliance", Name: "Align endpoint protection tooling", Priority: "Medium", SortOrder: 2},
		}
		for _, tpl := range templates {
			db.Model(&templatedm.TaskTemplate{}).Where("task_id = ?", tpl.TaskID).Count(&count)
			if count > 0 {
				continue
			}
			tpl.Active = true
			tpl.CreatedAt = time.Now()
			if err := db.Create(&tpl).Error; err != nil {
				log.Fatalf("failed to seed task template %s: %v", tpl.TaskID, err)
			}
			fmt.Println("Seeded task template:", tpl.TaskID)
		}

		// Touch the tasks table so a fresh database fails loudly here
		// rather than on first project creation if migrations were
		// skipped.
		if err := db.Model(&taskdm.Task{}).Limit(1).Find(&[]taskdm.Task{}).Error; err != nil {
			log.Fatalf("tasks table missing, run migrations first: %v", err)
		}

		fmt.Println("Seeding complete")
	},
}
