package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createVideosTable creates the videos table with its indexes.
func createVideosTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_videos",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS videos (
					video_id VARCHAR(100) PRIMARY KEY,
					level VARCHAR(20) NOT NULL,
					title VARCHAR(500) NOT NULL,
					description TEXT,
					thumbnail_url VARCHAR(500),

					-- Metrics
					duration_sec INTEGER DEFAULT 0,
					view_count INTEGER DEFAULT 0,
					tags TEXT[],

					-- Score
					score DECIMAL(12,2) DEFAULT 0,

					-- Timestamps
					published_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_videos_level ON videos(level);",
				// Prune scans a level ordered by score ascending.
				"CREATE INDEX IF NOT EXISTS idx_videos_level_score ON videos(level, score ASC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(published_at DESC);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS videos;").Error
		},
	}
}
