package journal

const Schema = `
CREATE TABLE IF NOT EXISTS periods (
	run_id TEXT NOT NULL,
	period INTEGER NOT NULL,
	time DATETIME NOT NULL,
	scenario TEXT NOT NULL,
	chosen_premium REAL NOT NULL,
	reference_premium REAL NOT NULL,
	policy_count INTEGER NOT NULL,
	claim_count INTEGER NOT NULL,
	total_claim_amount REAL NOT NULL,
	premium_income REAL NOT NULL,
	expense_amount REAL NOT NULL,
	underwriting_result REAL NOT NULL,
	combined_ratio REAL NOT NULL,
	capital_after REAL NOT NULL,
	outcome TEXT NOT NULL,
	PRIMARY KEY (run_id, period)
);

CREATE TABLE IF NOT EXISTS capital (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	period INTEGER NOT NULL,
	capital REAL NOT NULL,
	reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_capital_run ON capital(run_id, time);
`
