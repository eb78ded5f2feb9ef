package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "aurum:aurum@tcp(localhost:3306)/aurumpay?parseTime=true&multiStatements=true&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS merchant_status_types (
	  id VARCHAR(32) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  version BIGINT NOT NULL DEFAULT 1,
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS merchant_identifier_types (
	  id VARCHAR(32) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  version BIGINT NOT NULL DEFAULT 1,
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS transaction_types (
	  id VARCHAR(32) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  version BIGINT NOT NULL DEFAULT 1,
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS transaction_status_types (
	  id VARCHAR(32) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  version BIGINT NOT NULL DEFAULT 1,
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS merchants (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  name VARCHAR(255) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  status_id VARCHAR(32) NOT NULL,
	  identifier_type_id VARCHAR(32) NULL,
	  identifier_value VARCHAR(64) NULL,
	  total_transaction_sum DECIMAL(12,2) NOT NULL DEFAULT 0.00,
	  version BIGINT NOT NULL DEFAULT 1,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_merchants_email (email),
	  UNIQUE KEY ux_merchants_identifier (identifier_type_id, identifier_value),
	  KEY ix_merchants_name (name),
	  CONSTRAINT fk_merchants_status FOREIGN KEY (status_id) REFERENCES merchant_status_types(id),
	  CONSTRAINT fk_merchants_identifier_type FOREIGN KEY (identifier_type_id) REFERENCES merchant_identifier_types(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS transactions (
	  id CHAR(36) NOT NULL,
	  type_id VARCHAR(32) NOT NULL,
	  amount DECIMAL(12,2) NULL,
	  status_id VARCHAR(32) NOT NULL,
	  error_reason VARCHAR(255) NULL,
	  reference_id VARCHAR(64) NULL,
	  customer_email VARCHAR(255) NULL,
	  customer_phone VARCHAR(32) NULL,
	  merchant_id BIGINT NOT NULL,
	  belongs_to_transaction_id CHAR(36) NULL,
	  version BIGINT NOT NULL DEFAULT 1,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_transactions_reference_id (reference_id),
	  UNIQUE KEY ux_transactions_parent (belongs_to_transaction_id),
	  KEY ix_transactions_merchant_id (merchant_id),
	  KEY ix_transactions_created_at (created_at),
	  CONSTRAINT fk_transactions_merchant FOREIGN KEY (merchant_id) REFERENCES merchants(id),
	  CONSTRAINT fk_transactions_type FOREIGN KEY (type_id) REFERENCES transaction_types(id),
	  CONSTRAINT fk_transactions_status FOREIGN KEY (status_id) REFERENCES transaction_status_types(id),
	  CONSTRAINT fk_transactions_parent FOREIGN KEY (belongs_to_transaction_id) REFERENCES transactions(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	INSERT IGNORE INTO merchant_status_types (id, name) VALUES
	  ('ACTIVE', 'Active'),
	  ('INACTIVE', 'Inactive');

	INSERT IGNORE INTO merchant_identifier_types (id, name) VALUES
	  ('VAT_NUMBER', 'VAT number'),
	  ('COMPANY_REG', 'Company registration number'),
	  ('NATIONAL_ID', 'National ID');

	INSERT IGNORE INTO transaction_types (id, name) VALUES
	  ('AUTHORIZE', 'Authorize'),
	  ('CHARGE', 'Charge'),
	  ('REFUND', 'Refund'),
	  ('REVERSAL', 'Reversal');

	INSERT IGNORE INTO transaction_status_types (id, name) VALUES
	  ('APPROVED', 'Approved'),
	  ('ERROR', 'Error'),
	  ('REFUNDED', 'Refunded'),
	  ('REVERSED', 'Reversed');
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ merchant tables created successfully")
	log.Println("✓ transaction tables created successfully")
	log.Println("✓ reference data seeded")
}
