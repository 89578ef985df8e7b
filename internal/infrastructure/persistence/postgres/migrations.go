package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE REFERENCE DATA
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create MPA ratings and genres reference tables
-- Version: 001

CREATE TABLE IF NOT EXISTS mpa_ratings (
    id INTEGER PRIMARY KEY,
    name VARCHAR(10) NOT NULL UNIQUE,
    description VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS genres (
    id INTEGER PRIMARY KEY,
    name VARCHAR(50) NOT NULL UNIQUE
);

INSERT INTO mpa_ratings (id, name, description) VALUES
    (1, 'G', 'No age restrictions'),
    (2, 'PG', 'Parental guidance suggested'),
    (3, 'PG-13', 'Not recommended under 13'),
    (4, 'R', 'Under 17 requires an adult'),
    (5, 'NC-17', 'No one 17 and under admitted')
ON CONFLICT (id) DO NOTHING;

INSERT INTO genres (id, name) VALUES
    (1, 'Comedy'),
    (2, 'Drama'),
    (3, 'Cartoon'),
    (4, 'Thriller'),
    (5, 'Documentary'),
    (6, 'Action')
ON CONFLICT (id) DO NOTHING;
`

const migration001Down = `
DROP TABLE IF EXISTS genres;
DROP TABLE IF EXISTS mpa_ratings;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE USERS AND FILMS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create users and films tables
-- Version: 002

CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) NOT NULL,
    login VARCHAR(100) NOT NULL UNIQUE,
    name VARCHAR(100) NOT NULL,
    birthday DATE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT users_email_has_at CHECK (position('@' in email) > 0)
);

CREATE INDEX IF NOT EXISTS idx_users_login ON users(login);

CREATE TABLE IF NOT EXISTS films (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description VARCHAR(200) NOT NULL DEFAULT '',
    release_date DATE,
    duration INTEGER,
    mpa_id INTEGER NOT NULL REFERENCES mpa_ratings(id),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT films_name_not_blank CHECK (length(trim(name)) > 0),
    CONSTRAINT films_positive_duration CHECK (duration IS NULL OR duration > 0),
    CONSTRAINT films_release_after_cinema CHECK (release_date IS NULL OR release_date >= DATE '1895-12-28')
);

CREATE INDEX IF NOT EXISTS idx_films_mpa_id ON films(mpa_id);
CREATE INDEX IF NOT EXISTS idx_films_release_date ON films(release_date);
`

const migration002Down = `
DROP TABLE IF EXISTS films;
DROP TABLE IF EXISTS users;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE RELATIONSHIPS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create film_genre, film_like and friendship tables
-- Version: 003

CREATE TABLE IF NOT EXISTS film_genre (
    film_id INTEGER NOT NULL REFERENCES films(id) ON DELETE CASCADE,
    genre_id INTEGER NOT NULL REFERENCES genres(id),

    PRIMARY KEY (film_id, genre_id)
);

CREATE INDEX IF NOT EXISTS idx_film_genre_genre_id ON film_genre(genre_id);

CREATE TABLE IF NOT EXISTS film_like (
    film_id INTEGER NOT NULL REFERENCES films(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (film_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_film_like_user_id ON film_like(user_id);

-- Friendship is symmetric: every link is stored as two rows, one per
-- direction, written in a single transaction.
CREATE TABLE IF NOT EXISTS friendship (
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    friend_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (user_id, friend_id),
    CONSTRAINT friendship_no_self CHECK (user_id <> friend_id)
);

CREATE INDEX IF NOT EXISTS idx_friendship_friend_id ON friendship(friend_id);
`

const migration003Down = `
DROP TABLE IF EXISTS friendship;
DROP TABLE IF EXISTS film_like;
DROP TABLE IF EXISTS film_genre;
`
