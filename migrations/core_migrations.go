package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_01_02_000000_create_matchday_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matchdays (
						id BIGSERIAL PRIMARY KEY,
						match_date DATE NOT NULL,
						status VARCHAR(30) NOT NULL DEFAULT 'voting_open',
						voting_opens_at TIMESTAMP,
						voting_closes_at TIMESTAMP,
						squads_published BOOLEAN NOT NULL DEFAULT FALSE,
						fixtures_published BOOLEAN NOT NULL DEFAULT FALSE,
						ended BOOLEAN NOT NULL DEFAULT FALSE,
						reviewed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_matchdays_match_date ON matchdays(match_date);
					CREATE INDEX IF NOT EXISTS idx_matchdays_status ON matchdays(status);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matchday_votes (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_matchday_player ON matchday_votes(matchday_id, player_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS squads (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						squad_index INT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_squads_matchday_index ON squads(matchday_id, squad_index);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS squad_members (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						squad_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE,
						FOREIGN KEY (squad_id) REFERENCES squads(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_squad_members_matchday_player ON squad_members(matchday_id, player_id);
					CREATE INDEX IF NOT EXISTS idx_squad_members_squad_id ON squad_members(squad_id);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS squad_members CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS squads CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS matchday_votes CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS matchdays CASCADE").Error
			},
		},
		{
			Name: "2026_01_03_000000_create_fixture_and_ledger_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS fixtures (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						home_squad_id BIGINT NOT NULL,
						away_squad_id BIGINT NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						home_goals INT NOT NULL DEFAULT 0,
						away_goals INT NOT NULL DEFAULT 0,
						started_at TIMESTAMP NULL,
						ended_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE,
						FOREIGN KEY (home_squad_id) REFERENCES squads(id) ON DELETE CASCADE,
						FOREIGN KEY (away_squad_id) REFERENCES squads(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_fixtures_matchday_pair ON fixtures(matchday_id, home_squad_id, away_squad_id);
				`).Error; err != nil {
					return err
				}

				// Scorer and card player ids are signed: negative values
				// encode guest slots, so no foreign key on those columns.
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS fixture_goals (
						id BIGSERIAL PRIMARY KEY,
						fixture_id BIGINT NOT NULL,
						scorer_id BIGINT NOT NULL,
						assister_id BIGINT NULL,
						minute INT NULL,
						is_home_goal BOOLEAN NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (fixture_id) REFERENCES fixtures(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_fixture_goals_fixture_id ON fixture_goals(fixture_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS fixture_cards (
						id BIGSERIAL PRIMARY KEY,
						fixture_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						card_type VARCHAR(10) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (fixture_id) REFERENCES fixtures(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_fixture_cards_fixture_id ON fixture_cards(fixture_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matchday_cards (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						yellow_count INT NOT NULL DEFAULT 0,
						red_count INT NOT NULL DEFAULT 0,
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_matchday_cards_player ON matchday_cards(matchday_id, player_id);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matchday_attendance (
						id BIGSERIAL PRIMARY KEY,
						matchday_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						present BOOLEAN NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (matchday_id) REFERENCES matchdays(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_matchday_player ON matchday_attendance(matchday_id, player_id);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				tables := []string{
					"matchday_attendance",
					"matchday_cards",
					"fixture_cards",
					"fixture_goals",
					"fixtures",
				}
				for _, table := range tables {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
