package main

const schemaDDL = `
CREATE TABLE IF NOT EXISTS suppliers (
	supplier_id BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS supplies (
	supply_id      BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	category       TEXT,
	expiry_date    DATE,
	total_quantity NUMERIC(14, 3),
	cost_per_unit  NUMERIC(14, 2)
);

CREATE TABLE IF NOT EXISTS store_stock (
	stock_id           BIGSERIAL PRIMARY KEY,
	supply_id          BIGINT REFERENCES supplies (supply_id),
	quantity_available NUMERIC(14, 3),
	last_updated       TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_store_stock_supply ON store_stock (supply_id);

CREATE TABLE IF NOT EXISTS usage_records (
	usage_id      BIGSERIAL PRIMARY KEY,
	date          DATE,
	supply_id     BIGINT REFERENCES supplies (supply_id),
	quantity_used NUMERIC(14, 3),
	location      TEXT
);

CREATE TABLE IF NOT EXISTS supply_orders (
	order_id          BIGSERIAL PRIMARY KEY,
	date              DATE,
	supplier_id       BIGINT REFERENCES suppliers (supplier_id),
	supply_id         BIGINT REFERENCES supplies (supply_id),
	quantity_received NUMERIC(14, 3),
	total_cost        NUMERIC(14, 2)
);

CREATE TABLE IF NOT EXISTS expenses (
	expense_id BIGSERIAL PRIMARY KEY,
	date       DATE,
	category   TEXT,
	amount     NUMERIC(14, 2)
);

CREATE TABLE IF NOT EXISTS market_purchases (
	purchase_id BIGSERIAL PRIMARY KEY,
	date        DATE,
	item_name   TEXT,
	category    TEXT,
	quantity    NUMERIC(14, 3),
	cost        NUMERIC(14, 2)
);

CREATE TABLE IF NOT EXISTS restock_requests (
	request_id         BIGSERIAL PRIMARY KEY,
	date               DATE NOT NULL,
	supply_id          BIGINT NOT NULL REFERENCES supplies (supply_id),
	quantity_requested NUMERIC(14, 3) NOT NULL,
	request_type       TEXT NOT NULL
);
`
