package migrations

import "gorm.io/gorm"

func GetMembershipMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_01_01_000000_create_membership_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						first_name VARCHAR(100) NOT NULL,
						surname VARCHAR(100) NOT NULL,
						baller_name VARCHAR(100) NOT NULL,
						jersey_number INT NOT NULL,
						email VARCHAR(255) NOT NULL,
						whatsapp_phone VARCHAR(30) NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						suspended BOOLEAN NOT NULL DEFAULT FALSE,
						password_hash VARCHAR(255),
						password_display VARCHAR(50),
						year_registered INT,
						approved_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_players_baller_name ON players(baller_name);
					CREATE INDEX IF NOT EXISTS idx_players_status ON players(status);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS dues (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						year INT NOT NULL,
						quarter INT NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'owing',
						paid_at TIMESTAMP NULL,
						waiver_due_by DATE NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_dues_player_period ON dues(player_id, year, quarter);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS payment_evidence (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						year INT NOT NULL,
						quarter INT NOT NULL,
						reference VARCHAR(255) NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						submitted_at TIMESTAMP DEFAULT NOW(),
						reviewed_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_payment_evidence_player_id ON payment_evidence(player_id);
					CREATE INDEX IF NOT EXISTS idx_payment_evidence_status ON payment_evidence(status);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS payment_evidence CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS dues CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
	}
}
