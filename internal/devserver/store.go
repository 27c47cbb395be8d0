package devserver

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo data if the DB is empty (safe to run every start).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  images_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_title ON products(LOWER(title));

-- Reviews (read-only, embedded in product payloads)
CREATE TABLE IF NOT EXISTS reviews(
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL,
  reviewer_name TEXT NOT NULL,
  date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Recipes
CREATE TABLE IF NOT EXISTS recipes(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  ingredients_json TEXT NOT NULL DEFAULT '[]',
  instructions_json TEXT NOT NULL DEFAULT '[]',
  prep_time_minutes INTEGER NOT NULL DEFAULT 0,
  cook_time_minutes INTEGER NOT NULL DEFAULT 0,
  servings INTEGER NOT NULL DEFAULT 0,
  difficulty TEXT NOT NULL DEFAULT '',
  cuisine TEXT NOT NULL DEFAULT '',
  calories_per_serving INTEGER NOT NULL DEFAULT 0,
  tags_json TEXT NOT NULL DEFAULT '[]',
  user_id INTEGER NOT NULL DEFAULT 0,
  image TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(LOWER(name));

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/reviews/recipes")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,title,price,images_json) VALUES
	  (1,'Essence Mascara Lash Princess',9.99,'["products/1/main.jpg"]'),
	  (2,'Powder Canister',14.99,'["products/2/main.jpg"]'),
	  (3,'Red Lipstick',12.99,'["products/3/main.jpg"]'),
	  (4,'Calvin Klein CK One',49.99,'["products/4/main.jpg"]'),
	  (5,'Annibale Colombo Bed',1899.99,'["products/5/main.jpg"]'),
	  (6,'Knoll Saarinen Executive Conference Chair',499.99,'["products/6/main.jpg"]')`)

	tx.MustExec(`INSERT INTO reviews(product_id,rating,comment,reviewer_name,date) VALUES
	  (1,4,'Very satisfied!','Lucas Gordon','2025-04-30T09:41:02.053Z'),
	  (1,5,'Highly recommended!','Eleanor Collins','2025-05-12T09:41:02.053Z'),
	  (1,1,'Not as described!','Eleanor Tyler','2025-06-02T09:41:02.053Z'),
	  (2,3,'Would not buy again.','Mason Parker','2025-04-18T09:41:02.053Z'),
	  (2,5,'Excellent quality!','Avery Carter','2025-05-25T09:41:02.053Z'),
	  (3,4,'Good value for money.','Liam Murphy','2025-03-11T09:41:02.053Z')`)

	tx.MustExec(`INSERT INTO recipes(id,name,ingredients_json,instructions_json,
	  prep_time_minutes,cook_time_minutes,servings,difficulty,cuisine,calories_per_serving,tags_json,user_id,image) VALUES
	  (1,'Classic Margherita Pizza',
	    '["Pizza dough","Tomato sauce","Fresh mozzarella","Basil","Olive oil"]',
	    '["Preheat the oven to 475F.","Spread sauce over the dough.","Top with cheese and bake."]',
	    20,15,4,'Easy','Italian',300,'["Pizza","Italian"]',45,'recipes/1.jpg'),
	  (2,'Vegetarian Stir-Fry',
	    '["Tofu","Broccoli","Carrots","Soy sauce","Ginger"]',
	    '["Press and cube the tofu.","Stir-fry vegetables.","Add sauce and simmer."]',
	    15,10,3,'Medium','Asian',250,'["Vegetarian","Stir-fry"]',26,'recipes/2.jpg'),
	  (3,'Chicken Alfredo Pasta',
	    '["Fettuccine","Chicken breast","Cream","Parmesan","Garlic"]',
	    '["Boil the pasta.","Cook the chicken.","Combine with sauce."]',
	    15,20,4,'Medium','Italian',500,'["Pasta","Chicken"]',45,'recipes/3.jpg'),
	  (4,'Pesto Pasta with Cherry Tomatoes',
	    '["Penne","Basil pesto","Cherry tomatoes","Parmesan"]',
	    '["Boil the pasta.","Toss with pesto.","Top with tomatoes."]',
	    10,12,2,'Easy','Italian',400,'["Pasta","Vegetarian"]',12,'recipes/4.jpg'),
	  (5,'Japanese Ramen Soup',
	    '["Ramen noodles","Broth","Pork","Egg","Scallions"]',
	    '["Simmer the broth.","Cook the noodles.","Assemble the bowl."]',
	    25,30,2,'Hard','Japanese',450,'["Soup","Japanese"]',85,'recipes/5.jpg')`)

	return tx.Commit()
}

// seedUsers ensures the demo account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE username = 'emilys'`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("emilyspass"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO users(username,email,first_name,last_name,image,password_hash)
	  VALUES ('emilys','emily.johnson@x.dummyjson.com','Emily','Johnson','users/emily.png',?)`, string(hash))
	return err
}
