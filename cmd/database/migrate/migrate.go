package migration

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Sehat-Backend/entities"
	"Sehat-Backend/internal/utils"
)

type ownedTable struct {
	name   string
	column string
}

// Every table is readable and writable only by the user named in the
// transaction-local app.current_user_id setting.
var ownedTables = []ownedTable{
	{name: "medical_reports", column: "user_id"},
	{name: "vitals", column: "user_id"},
	{name: "profiles", column: "id"},
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("creating uuid extension: %w", err)
	}

	if err := db.AutoMigrate(&entities.Report{}); err != nil {
		return fmt.Errorf("migrating report table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Vital{}); err != nil {
		return fmt.Errorf("migrating vital table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Profile{}); err != nil {
		return fmt.Errorf("migrating profile table: %w", err)
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_medical_reports_user_created ON medical_reports (user_id, created_at DESC)`).Error; err != nil {
		return fmt.Errorf("creating report index: %w", err)
	}

	for _, stmt := range policyStatements() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("applying row level security: %w", err)
		}
	}

	log.Info("database migration complete")
	return nil
}

func policyStatements() []string {
	stmts := make([]string, 0, len(ownedTables)*4)
	for _, t := range ownedTables {
		owner := fmt.Sprintf("%s = nullif(current_setting('%s', true), '')::uuid", t.column, utils.CurrentUserSetting)
		policy := t.name + "_owner"
		stmts = append(stmts,
			fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", t.name),
			fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", t.name),
			fmt.Sprintf("DROP POLICY IF EXISTS %s ON %s", policy, t.name),
			fmt.Sprintf("CREATE POLICY %s ON %s USING (%s) WITH CHECK (%s)", policy, t.name, owner, owner),
		)
	}
	return stmts
}
