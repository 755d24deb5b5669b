// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from the config:

  - sqlite: modernc.org/sqlite, a pure-Go build. The path is turned into a
    file: URI with foreign keys enabled and the pool is capped at one
    connection.
  - postgres: github.com/lib/pq.

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

Queries elsewhere use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey: Survey metadata, owner email, target audience and deadline
  - survey_question: Ordered questions per survey
  - question_option: Ordered options per question
  - survey_response: One selected option per participant per question

# Relationships

	survey 1──* survey_question 1──* question_option
	survey 1──* survey_response

All foreign keys use ON DELETE CASCADE.
*/
package db
