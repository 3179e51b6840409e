package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

const initialSchemaUp = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
    id                      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name                    TEXT NOT NULL,
    email                   TEXT NOT NULL,
    password_hash           TEXT,
    role                    TEXT NOT NULL DEFAULT 'admin' CHECK (role IN ('admin', 'super_admin')),
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    password_setup_complete BOOLEAN NOT NULL DEFAULT FALSE,
    reset_password_otp      TEXT,
    reset_password_expires  TIMESTAMPTZ,
    invitation_token        TEXT,
    invitation_expires      TIMESTAMPTZ,
    created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
CREATE UNIQUE INDEX IF NOT EXISTS users_invitation_token_key ON users (invitation_token) WHERE invitation_token IS NOT NULL;
CREATE INDEX IF NOT EXISTS users_role_idx ON users (role);

CREATE TABLE IF NOT EXISTS services (
    id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title             TEXT NOT NULL,
    slug              TEXT NOT NULL,
    short_description TEXT NOT NULL,
    description       TEXT NOT NULL,
    image             TEXT NOT NULL,
    features          TEXT[] NOT NULL DEFAULT '{}',
    is_active         BOOLEAN NOT NULL DEFAULT TRUE,
    sort_order        INTEGER NOT NULL DEFAULT 0,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS services_slug_key ON services (slug);
CREATE INDEX IF NOT EXISTS services_active_order_idx ON services (is_active, sort_order);

CREATE TABLE IF NOT EXISTS blog_posts (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title          TEXT NOT NULL,
    slug           TEXT NOT NULL,
    excerpt        VARCHAR(300) NOT NULL,
    content        TEXT NOT NULL,
    featured_image TEXT NOT NULL DEFAULT '',
    author_id      UUID REFERENCES users (id) ON DELETE SET NULL,
    category       TEXT NOT NULL DEFAULT 'General',
    tags           TEXT[] NOT NULL DEFAULT '{}',
    status         TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
    published_at   TIMESTAMPTZ,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS blog_posts_slug_key ON blog_posts (slug);
CREATE INDEX IF NOT EXISTS blog_posts_status_published_idx ON blog_posts (status, published_at DESC);
CREATE INDEX IF NOT EXISTS blog_posts_category_idx ON blog_posts (category);

CREATE TABLE IF NOT EXISTS page_contents (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    page       TEXT NOT NULL CHECK (page IN ('home', 'about', 'services', 'blog', 'contact')),
    sections   JSONB NOT NULL DEFAULT '[]',
    updated_by UUID REFERENCES users (id) ON DELETE SET NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS page_contents_page_key ON page_contents (page);

CREATE TABLE IF NOT EXISTS settings (
    id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    singleton        BOOLEAN NOT NULL DEFAULT TRUE CHECK (singleton),
    site_name        TEXT NOT NULL,
    site_description TEXT NOT NULL,
    contact_email    TEXT NOT NULL,
    contact_phone    TEXT NOT NULL DEFAULT '',
    address          TEXT NOT NULL DEFAULT '',
    company_info     JSONB NOT NULL DEFAULT '{}',
    social_links     JSONB NOT NULL DEFAULT '{}',
    logo             TEXT NOT NULL DEFAULT '',
    favicon          TEXT NOT NULL DEFAULT '',
    og_image         TEXT NOT NULL DEFAULT '',
    updated_by       UUID REFERENCES users (id) ON DELETE SET NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS settings_singleton_key ON settings (singleton);

CREATE TABLE IF NOT EXISTS contacts (
    id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    full_name        TEXT NOT NULL,
    email            TEXT NOT NULL,
    phone            TEXT NOT NULL,
    service_interest TEXT NOT NULL,
    message          TEXT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'read', 'replied', 'archived')),
    notes            TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS contacts_status_created_idx ON contacts (status, created_at DESC);
CREATE INDEX IF NOT EXISTS contacts_email_idx ON contacts (email);
`

const initialSchemaDown = `
DROP TABLE IF EXISTS contacts;
DROP TABLE IF EXISTS settings;
DROP TABLE IF EXISTS page_contents;
DROP TABLE IF EXISTS blog_posts;
DROP TABLE IF EXISTS services;
DROP TABLE IF EXISTS users;
`

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, initialSchemaUp)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, initialSchemaDown)
		return err
	})
}
