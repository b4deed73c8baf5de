package database

import (
	"context"
	"fmt"
	"log"

	"github.com/Amanjain8795/matratv-connect-main-sub001/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

func InitDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var err error
	Pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := Pool.Ping(context.Background()); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("✅ Connected to PostgreSQL")
	if err := createUsersTables(); err != nil {
		return fmt.Errorf("failed to create users tables: %w", err)
	}
	if err := createSubscriptionTables(); err != nil {
		return fmt.Errorf("failed to create subscription tables: %w", err)
	}
	if err := createReferralTables(); err != nil {
		return fmt.Errorf("failed to create referral tables: %w", err)
	}
	if err := createStoreTables(); err != nil {
		return fmt.Errorf("failed to create store tables: %w", err)
	}
	if err := createPaymentTables(); err != nil {
		return fmt.Errorf("failed to create payment tables: %w", err)
	}
	return nil
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		log.Println("🛑 PostgreSQL connection closed")
	}
}

func createUsersTables() error {
	// pgcrypto for gen_random_uuid()
	_, err := Pool.Exec(context.Background(), `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(100),
			role VARCHAR(20) DEFAULT 'user',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	// Profiles carry the referral tree and balances. referred_by is set once
	// at registration and never updated afterwards; balances are written only
	// by the commission distributor and by withdrawal processing.
	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS user_profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			referral_code VARCHAR(20) UNIQUE NOT NULL,
			referred_by UUID REFERENCES user_profiles(id),
			available_balance DECIMAL(12,2) NOT NULL DEFAULT 0,
			total_earnings DECIMAL(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_user_profiles_user_id ON user_profiles(user_id);
		CREATE INDEX IF NOT EXISTS idx_user_profiles_referred_by ON user_profiles(referred_by);
	`)
	if err != nil {
		return err
	}

	log.Println("✅ Users and profiles tables ready")
	return nil
}

func createSubscriptionTables() error {
	_, err := Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS subscription_plans (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			currency VARCHAR(3) DEFAULT 'INR',
			duration_days INTEGER NOT NULL DEFAULT 365,
			is_active BOOLEAN DEFAULT true,
			sort_order INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS user_subscriptions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			plan_id INTEGER NOT NULL REFERENCES subscription_plans(id),
			status VARCHAR(20) DEFAULT 'pending',
			current_period_start TIMESTAMP,
			current_period_end TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE INDEX IF NOT EXISTS idx_user_subscriptions_user_id ON user_subscriptions(user_id);
	`)
	if err != nil {
		return err
	}

	// Seed the default plan if the table is empty
	var count int
	err = Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM subscription_plans`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		_, err = Pool.Exec(context.Background(), `
			INSERT INTO subscription_plans (name, code, description, price, duration_days, sort_order) VALUES
			('Membership', 'membership', 'One-year member access and referral earnings', 590, 365, 1);
		`)
		if err != nil {
			return err
		}
		log.Println("✅ Default subscription plan seeded")
	}

	log.Println("✅ Subscription tables ready")
	return nil
}

func createReferralTables() error {
	// The unique index is what makes commission distribution idempotent:
	// a retried or concurrent distribute() hits ON CONFLICT DO NOTHING.
	_, err := Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS referral_commissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			referrer_id UUID NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
			referee_id UUID NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
			level INTEGER NOT NULL CHECK (level BETWEEN 1 AND 7),
			commission_amount DECIMAL(10,2) NOT NULL,
			trigger_type VARCHAR(50) NOT NULL,
			trigger_user_id UUID NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE (referee_id, trigger_user_id, level)
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE INDEX IF NOT EXISTS idx_referral_commissions_referrer ON referral_commissions(referrer_id, level);
	`)
	if err != nil {
		return err
	}

	// Key-value settings, currently only the reward table
	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS app_settings (
			key VARCHAR(100) PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	log.Println("✅ Referral tables ready")
	return nil
}

func createStoreTables() error {
	_, err := Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			image_url TEXT,
			category VARCHAR(100),
			in_stock BOOLEAN DEFAULT true,
			is_active BOOLEAN DEFAULT true,
			sort_order INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			total_amount DECIMAL(12,2) NOT NULL,
			status VARCHAR(20) DEFAULT 'created',
			shipping_address JSONB,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10,2) NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	`)
	if err != nil {
		return err
	}

	var count int
	err = Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		_, err = Pool.Exec(context.Background(), `
			INSERT INTO products (name, description, price, category, sort_order) VALUES
			('Sanitary Pads (Pack of 6)', 'Ultra-soft anion sanitary napkins', 590, 'hygiene', 1),
			('Sanitary Pads (Pack of 12)', 'Ultra-soft anion sanitary napkins, family pack', 1100, 'hygiene', 2),
			('Herbal Face Wash', 'Neem and tulsi face wash, 100ml', 249, 'personal-care', 3);
		`)
		if err != nil {
			return err
		}
		log.Println("✅ Product catalog seeded")
	}

	log.Println("✅ Store tables ready")
	return nil
}

func createPaymentTables() error {
	_, err := Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS payment_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			subscription_id UUID REFERENCES user_subscriptions(id) ON DELETE SET NULL,
			amount DECIMAL(12,2) NOT NULL,
			upi_reference VARCHAR(50),
			status VARCHAR(20) DEFAULT 'created',
			verified_by UUID REFERENCES users(id),
			submitted_at TIMESTAMP,
			processed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS withdrawal_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			profile_id UUID NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
			amount DECIMAL(12,2) NOT NULL CHECK (amount > 0),
			upi_id VARCHAR(100) NOT NULL,
			status VARCHAR(20) DEFAULT 'pending',
			processed_by UUID REFERENCES users(id),
			processed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
		CREATE INDEX IF NOT EXISTS idx_payment_requests_user_id ON payment_requests(user_id);
		CREATE INDEX IF NOT EXISTS idx_payment_requests_status ON payment_requests(status);
		CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_profile ON withdrawal_requests(profile_id);
		CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_status ON withdrawal_requests(status);
	`)
	if err != nil {
		return err
	}

	log.Println("✅ Payment tables ready")
	return nil
}
