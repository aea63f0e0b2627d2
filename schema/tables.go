package schema

import "github.com/imtaco/gymmigrate/store"

// Table is one destination table and the statements that create it.
type Table struct {
	Name      string
	DependsOn []string
	DDL       map[store.Dialect][]string
}

// Physical destination table names.
const (
	Admins        = "admins"
	Countries     = "countries"
	CountryCities = "country_cities"
	Customers     = "customers"
	Leads         = "leads"
	PlanGroups    = "MembershipPlanGroup"
	SinglePlans   = "SingleMembershipPlan"
	PaymentPlans  = "PaymentPlan"
)

// CRMTables returns the tables the customer and lead migration writes to.
func CRMTables() []Table {
	return []Table{adminsTable, countriesTable, citiesTable, customersTable, leadsTable}
}

// PlanTables returns the tables the membership migration writes to.
func PlanTables() []Table {
	return []Table{planGroupsTable, singlePlansTable, paymentPlansTable}
}

var adminsTable = Table{
	Name: Admins,
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS admins (
				id INT AUTO_INCREMENT PRIMARY KEY,
				first_name VARCHAR(255) NOT NULL,
				last_name VARCHAR(255),
				email VARCHAR(255) NOT NULL,
				password VARCHAR(255),
				contact_number VARCHAR(20),
				admin_type VARCHAR(50) DEFAULT 'GLOBAL',
				gender ENUM('MALE', 'FEMALE', 'OTHER'),
				auth_id VARCHAR(255),
				status VARCHAR(50) NOT NULL,
				created_by INT NOT NULL,
				last_updated_by INT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP NOT NULL,
				is_admin BOOLEAN DEFAULT TRUE NOT NULL,
				is_instructor BOOLEAN DEFAULT FALSE NOT NULL,
				instructor_id INT,
				photo VARCHAR(255),
				batch_no VARCHAR(100),
				external_id VARCHAR(100),
				external_username VARCHAR(100),
				is_sys_admin BOOLEAN DEFAULT FALSE NOT NULL,
				use_for_signup BOOLEAN DEFAULT FALSE NOT NULL
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS admins (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				first_name TEXT NOT NULL,
				last_name TEXT,
				email TEXT NOT NULL,
				password TEXT,
				contact_number TEXT,
				admin_type TEXT DEFAULT 'GLOBAL',
				gender TEXT CHECK (gender IN ('MALE', 'FEMALE', 'OTHER')),
				auth_id TEXT,
				status TEXT NOT NULL,
				created_by INTEGER NOT NULL,
				last_updated_by INTEGER NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				is_admin BOOLEAN DEFAULT TRUE NOT NULL,
				is_instructor BOOLEAN DEFAULT FALSE NOT NULL,
				instructor_id INTEGER,
				photo TEXT,
				batch_no TEXT,
				external_id TEXT,
				external_username TEXT,
				is_sys_admin BOOLEAN DEFAULT FALSE NOT NULL,
				use_for_signup BOOLEAN DEFAULT FALSE NOT NULL
			)`},
	},
}

var countriesTable = Table{
	Name: Countries,
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS countries (
				id INT NOT NULL,
				name VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL,
				iso_code VARCHAR(10) NOT NULL,
				dial_code VARCHAR(10) NOT NULL,
				flag_photo VARCHAR(255),
				vat DOUBLE DEFAULT 0,
				service_phone_number VARCHAR(20) NOT NULL,
				time_zone_identifier VARCHAR(100),
				vat_id VARCHAR(100),
				p_key_customers INT AUTO_INCREMENT PRIMARY KEY,
				currency_name VARCHAR(100),
				currency_code VARCHAR(10),
				currency_symbol VARCHAR(10),
				currency_decimal_place INT,
				currency_loweset_denomination DOUBLE,
				currency_sub_unit_name VARCHAR(100),
				UNIQUE (id)
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS countries (
				id INTEGER NOT NULL UNIQUE,
				name TEXT NOT NULL,
				status TEXT NOT NULL,
				iso_code TEXT NOT NULL,
				dial_code TEXT NOT NULL,
				flag_photo TEXT,
				vat REAL DEFAULT 0,
				service_phone_number TEXT NOT NULL,
				time_zone_identifier TEXT,
				vat_id TEXT,
				p_key_customers INTEGER PRIMARY KEY AUTOINCREMENT,
				currency_name TEXT,
				currency_code TEXT,
				currency_symbol TEXT,
				currency_decimal_place INTEGER,
				currency_loweset_denomination REAL,
				currency_sub_unit_name TEXT
			)`},
	},
}

var citiesTable = Table{
	Name:      CountryCities,
	DependsOn: []string{Countries},
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS country_cities (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				country_id INT NOT NULL,
				FOREIGN KEY (country_id) REFERENCES countries(id)
					ON DELETE CASCADE
					ON UPDATE CASCADE
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS country_cities (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				country_id INTEGER NOT NULL,
				FOREIGN KEY (country_id) REFERENCES countries(id)
					ON DELETE CASCADE
					ON UPDATE CASCADE
			)`},
	},
}

var customersTable = Table{
	Name:      Customers,
	DependsOn: []string{Countries, CountryCities},
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS customers (
				id INT AUTO_INCREMENT PRIMARY KEY,
				first_name VARCHAR(255),
				last_name VARCHAR(255),
				email VARCHAR(255),
				is_email_verified BOOLEAN DEFAULT FALSE NOT NULL,
				contact_number VARCHAR(20),
				is_phone_verified BOOLEAN DEFAULT FALSE NOT NULL,
				accessed_by_mobile BOOLEAN DEFAULT FALSE NOT NULL,
				auth_id VARCHAR(255),
				country_id INT,
				status ENUM('ACTIVE', 'INACTIVE') DEFAULT 'ACTIVE' NOT NULL,
				gender ENUM('MALE', 'FEMALE', 'RATHER_NOT_SAY'),
				photo VARCHAR(255),
				dob DATE,
				pt_pref JSON DEFAULT JSON_ARRAY(),
				gym_class_pref JSON DEFAULT JSON_ARRAY(),
				gym_pref JSON DEFAULT JSON_ARRAY(),
				created_by INT,
				last_updated_by INT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP NOT NULL,
				is_parent BOOLEAN DEFAULT FALSE,
				is_linked_account BOOLEAN DEFAULT FALSE,
				parent_customer_id INT,
				lead_id VARCHAR(255),
				linked_account_id VARCHAR(255),
				middle_name VARCHAR(255),
				x_app_source VARCHAR(100),
				x_app_version VARCHAR(50),
				x_app_os VARCHAR(50),
				city_id INT,
				description TEXT,
				age INT,
				online_status ENUM('ONLINE', 'OFFLINE') DEFAULT 'ONLINE' NOT NULL,
				height INT,
				weight DECIMAL(16,3),
				training_place VARCHAR(255),
				location POINT,
				location_name VARCHAR(255),
				distance INT,
				background_image VARCHAR(255),
				interests TEXT,
				social_accounts JSON DEFAULT JSON_ARRAY(),
				height_unit VARCHAR(10),
				weight_unit VARCHAR(10),
				parq_health JSON DEFAULT JSON_ARRAY(),
				gfp_health JSON DEFAULT JSON_ARRAY(),
				t_and_c_signature_link VARCHAR(255),
				external_id VARCHAR(255),
				batch_no VARCHAR(255),
				champ_id VARCHAR(255),
				customer_code VARCHAR(255),
				INDEX idx_customers_contact_number (contact_number),
				FOREIGN KEY (city_id) REFERENCES country_cities(id),
				FOREIGN KEY (country_id) REFERENCES countries(id)
				ON DELETE CASCADE ON UPDATE CASCADE
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS customers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				first_name TEXT,
				last_name TEXT,
				email TEXT,
				is_email_verified BOOLEAN DEFAULT FALSE NOT NULL,
				contact_number TEXT,
				is_phone_verified BOOLEAN DEFAULT FALSE NOT NULL,
				accessed_by_mobile BOOLEAN DEFAULT FALSE NOT NULL,
				auth_id TEXT,
				country_id INTEGER,
				status TEXT DEFAULT 'ACTIVE' NOT NULL CHECK (status IN ('ACTIVE', 'INACTIVE')),
				gender TEXT CHECK (gender IN ('MALE', 'FEMALE', 'RATHER_NOT_SAY')),
				photo TEXT,
				dob DATE,
				pt_pref TEXT DEFAULT '[]',
				gym_class_pref TEXT DEFAULT '[]',
				gym_pref TEXT DEFAULT '[]',
				created_by INTEGER,
				last_updated_by INTEGER,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				is_parent BOOLEAN DEFAULT FALSE,
				is_linked_account BOOLEAN DEFAULT FALSE,
				parent_customer_id INTEGER,
				lead_id TEXT,
				linked_account_id TEXT,
				middle_name TEXT,
				x_app_source TEXT,
				x_app_version TEXT,
				x_app_os TEXT,
				city_id INTEGER,
				description TEXT,
				age INTEGER,
				online_status TEXT DEFAULT 'ONLINE' NOT NULL CHECK (online_status IN ('ONLINE', 'OFFLINE')),
				height INTEGER,
				weight NUMERIC,
				training_place TEXT,
				location BLOB,
				location_name TEXT,
				distance INTEGER,
				background_image TEXT,
				interests TEXT,
				social_accounts TEXT DEFAULT '[]',
				height_unit TEXT,
				weight_unit TEXT,
				parq_health TEXT DEFAULT '[]',
				gfp_health TEXT DEFAULT '[]',
				t_and_c_signature_link TEXT,
				external_id TEXT,
				batch_no TEXT,
				champ_id TEXT,
				customer_code TEXT,
				FOREIGN KEY (city_id) REFERENCES country_cities(id),
				FOREIGN KEY (country_id) REFERENCES countries(id)
				ON DELETE CASCADE ON UPDATE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_customers_contact_number ON customers (contact_number)`,
		},
	},
}

var leadsTable = Table{
	Name:      Leads,
	DependsOn: []string{Customers},
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS leads (
				id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				created_by INT UNSIGNED NULL,
				last_updated_by INT UNSIGNED NULL,
				vendor_id INT UNSIGNED NULL,
				vendor_type INT UNSIGNED NULL,
				company_id INT UNSIGNED NULL,
				lead_created_by VARCHAR(255) NULL,
				gym_id VARCHAR(255) NULL,
				first_name VARCHAR(255) NOT NULL,
				middle_name VARCHAR(255) NULL,
				last_name VARCHAR(255) NULL,
				description VARCHAR(255) NULL,
				dob DATE NULL,
				nationality VARCHAR(255) NULL,
				gender VARCHAR(50) DEFAULT 'any',
				address VARCHAR(255) NULL,
				photo VARCHAR(255) NULL,
				email VARCHAR(255) NULL,
				` + "`source`" + ` VARCHAR(255) NULL,
				is_email_verified BOOLEAN DEFAULT FALSE NOT NULL,
				phone_number VARCHAR(20) NULL,
				lead_type ENUM('TELEPHONE_ENQUIRY', 'MARKETING', 'SELF_GENERATED', 'WALK_IN') NULL,
				lead_status ENUM('NEW_MEMBER', 'RENEWED_MEMBER', 'EXPIRED', 'CANCELLED', 'HOT') NULL DEFAULT 'NEW_MEMBER',
				status ENUM('ACTIVE', 'INACTIVE') DEFAULT 'ACTIVE' NOT NULL,
				lead_status_updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				work_status VARCHAR(255) NULL,
				job_title VARCHAR(255) NULL,
				marketing_consent_sms BOOLEAN DEFAULT FALSE NOT NULL,
				marketing_consent_email BOOLEAN DEFAULT FALSE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP NOT NULL,
				country_id INT UNSIGNED NULL,
				city_id INT UNSIGNED NULL,
				customer_id INT,
				is_member BOOLEAN DEFAULT FALSE NOT NULL,
				is_recurring BOOLEAN DEFAULT FALSE NOT NULL,
				membership_details JSON NULL,
				membership_status ENUM('active', 'ended', 'cancelled', 'frozen', 'terminated', 'inactive', 'upcoming', 'transferred', 'relocated') NULL,
				membership_end_date TIMESTAMP NULL,
				parq_health JSON NULL,
				gfp_health JSON NULL,
				membership_action_date TIMESTAMP NULL,
				is_parent BOOLEAN DEFAULT TRUE NOT NULL,
				lead_id INT UNSIGNED NULL,
				t_and_c_signature_link VARCHAR(255) NULL,
				nick_name VARCHAR(255) NULL,
				external_id VARCHAR(255) NULL,
				batch_no VARCHAR(255) NULL,
				lead_no INT NULL,
				otp VARCHAR(10) NULL,
				last_otp_creation_datetime TIMESTAMP NULL,
				otp_count INT NULL,
				external_due_amount INT NULL,
				external_paid_amount INT NULL,
				external_membership_code VARCHAR(255) NULL,
				customer_code VARCHAR(255) NULL,
				is_class_booking_blocked BOOLEAN DEFAULT FALSE NOT NULL,
				date_of_class_block TIMESTAMP NULL,
				date_of_last_class_unblocked TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				lead_sub_status ENUM('status1', 'status2') NULL,
				lead_referal_status ENUM('status1', 'status2') NULL,
				first_signup BOOLEAN DEFAULT FALSE NOT NULL,
				referred_by_id VARCHAR(255) NULL,
				referred_by_name VARCHAR(255) NULL,
				payment_status ENUM('status1', 'status2') NULL,
				subscribed_instructors JSON NULL,
				marked_as_delete BOOLEAN DEFAULT FALSE NOT NULL,
				champ_id VARCHAR(255) NULL,
				landing_page_name VARCHAR(255) NULL,
				landing_page_offer VARCHAR(255) NULL,
				lead_trainer_id VARCHAR(255) NULL,
				old_lead_status ENUM('status1', 'status2') NULL,
				sign_up_statuses JSON NULL,
				search_vector TEXT NULL,
				INDEX idx_leads_phone_batch (phone_number, batch_no),
				UNIQUE KEY uq_lead_no (lead_no),
				FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE ON UPDATE CASCADE
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS leads (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_by INTEGER NULL,
				last_updated_by INTEGER NULL,
				vendor_id INTEGER NULL,
				vendor_type INTEGER NULL,
				company_id INTEGER NULL,
				lead_created_by TEXT NULL,
				gym_id TEXT NULL,
				first_name TEXT NOT NULL,
				middle_name TEXT NULL,
				last_name TEXT NULL,
				description TEXT NULL,
				dob DATE NULL,
				nationality TEXT NULL,
				gender TEXT DEFAULT 'any',
				address TEXT NULL,
				photo TEXT NULL,
				email TEXT NULL,
				"source" TEXT NULL,
				is_email_verified BOOLEAN DEFAULT FALSE NOT NULL,
				phone_number TEXT NULL,
				lead_type TEXT NULL CHECK (lead_type IN ('TELEPHONE_ENQUIRY', 'MARKETING', 'SELF_GENERATED', 'WALK_IN')),
				lead_status TEXT NULL DEFAULT 'NEW_MEMBER' CHECK (lead_status IN ('NEW_MEMBER', 'RENEWED_MEMBER', 'EXPIRED', 'CANCELLED', 'HOT')),
				status TEXT DEFAULT 'ACTIVE' NOT NULL CHECK (status IN ('ACTIVE', 'INACTIVE')),
				lead_status_updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				work_status TEXT NULL,
				job_title TEXT NULL,
				marketing_consent_sms BOOLEAN DEFAULT FALSE NOT NULL,
				marketing_consent_email BOOLEAN DEFAULT FALSE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				country_id INTEGER NULL,
				city_id INTEGER NULL,
				customer_id INTEGER,
				is_member BOOLEAN DEFAULT FALSE NOT NULL,
				is_recurring BOOLEAN DEFAULT FALSE NOT NULL,
				membership_details TEXT NULL,
				membership_status TEXT NULL,
				membership_end_date TIMESTAMP NULL,
				parq_health TEXT NULL,
				gfp_health TEXT NULL,
				membership_action_date TIMESTAMP NULL,
				is_parent BOOLEAN DEFAULT TRUE NOT NULL,
				lead_id INTEGER NULL,
				t_and_c_signature_link TEXT NULL,
				nick_name TEXT NULL,
				external_id TEXT NULL,
				batch_no TEXT NULL,
				lead_no INTEGER NULL UNIQUE,
				otp TEXT NULL,
				last_otp_creation_datetime TIMESTAMP NULL,
				otp_count INTEGER NULL,
				external_due_amount INTEGER NULL,
				external_paid_amount INTEGER NULL,
				external_membership_code TEXT NULL,
				customer_code TEXT NULL,
				is_class_booking_blocked BOOLEAN DEFAULT FALSE NOT NULL,
				date_of_class_block TIMESTAMP NULL,
				date_of_last_class_unblocked TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
				lead_sub_status TEXT NULL,
				lead_referal_status TEXT NULL,
				first_signup BOOLEAN DEFAULT FALSE NOT NULL,
				referred_by_id TEXT NULL,
				referred_by_name TEXT NULL,
				payment_status TEXT NULL,
				subscribed_instructors TEXT NULL,
				marked_as_delete BOOLEAN DEFAULT FALSE NOT NULL,
				champ_id TEXT NULL,
				landing_page_name TEXT NULL,
				landing_page_offer TEXT NULL,
				lead_trainer_id TEXT NULL,
				old_lead_status TEXT NULL,
				sign_up_statuses TEXT NULL,
				search_vector TEXT NULL,
				FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE ON UPDATE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_leads_phone_batch ON leads (phone_number, batch_no)`,
		},
	},
}

var planGroupsTable = Table{
	Name: PlanGroups,
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS MembershipPlanGroup (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description VARCHAR(255),
				adminId VARCHAR(250),
				createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				gymId VARCHAR(250),
				batchNo VARCHAR(250),
				externalId TEXT NULL
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS MembershipPlanGroup (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				description TEXT,
				adminId TEXT,
				createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				gymId TEXT,
				batchNo TEXT,
				externalId TEXT NULL
			)`},
	},
}

var singlePlansTable = Table{
	Name:      SinglePlans,
	DependsOn: []string{PlanGroups},
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS SingleMembershipPlan (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL,
				color VARCHAR(255),
				status VARCHAR(255) NOT NULL,
				trial BOOLEAN DEFAULT false NOT NULL,
				visible BOOLEAN NOT NULL,
				targetMinAge INT NULL,
				targetMaxAge INT NULL,
				adminId TEXT NOT NULL,
				membershipPlanGroupId INT NOT NULL,
				createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				targetGender VARCHAR(255),
				gracePeriodCancellation INT DEFAULT 0 NULL,
				gracePeriodChange INT DEFAULT 0 NULL,
				gracePeriodEarlyRenewal INT DEFAULT 0 NULL,
				gracePeriodRelocation INT DEFAULT 0 NULL,
				gracePeriodTransfer INT DEFAULT 0 NULL,
				championType VARCHAR(255),
				isChampion BOOLEAN DEFAULT false NULL,
				champAppId TEXT,
				subDomesticGymIds TEXT,
				batchNo TEXT,
				externalId TEXT NULL,
				gracePeriodMembershipExtension VARCHAR(255),
				FOREIGN KEY (membershipPlanGroupId) REFERENCES MembershipPlanGroup(id)
					ON DELETE CASCADE ON UPDATE CASCADE
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS SingleMembershipPlan (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				description TEXT NOT NULL,
				color TEXT,
				status TEXT NOT NULL,
				trial BOOLEAN DEFAULT false NOT NULL,
				visible BOOLEAN NOT NULL,
				targetMinAge INTEGER NULL,
				targetMaxAge INTEGER NULL,
				adminId TEXT NOT NULL,
				membershipPlanGroupId INTEGER NOT NULL,
				createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				targetGender TEXT,
				gracePeriodCancellation INTEGER DEFAULT 0 NULL,
				gracePeriodChange INTEGER DEFAULT 0 NULL,
				gracePeriodEarlyRenewal INTEGER DEFAULT 0 NULL,
				gracePeriodRelocation INTEGER DEFAULT 0 NULL,
				gracePeriodTransfer INTEGER DEFAULT 0 NULL,
				championType TEXT,
				isChampion BOOLEAN DEFAULT false NULL,
				champAppId TEXT,
				subDomesticGymIds TEXT,
				batchNo TEXT,
				externalId TEXT NULL,
				gracePeriodMembershipExtension TEXT,
				FOREIGN KEY (membershipPlanGroupId) REFERENCES MembershipPlanGroup(id)
					ON DELETE CASCADE ON UPDATE CASCADE
			)`},
	},
}

var paymentPlansTable = Table{
	Name:      PaymentPlans,
	DependsOn: []string{SinglePlans},
	DDL: map[store.Dialect][]string{
		store.MySQL: {`
			CREATE TABLE IF NOT EXISTS PaymentPlan (
				id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				type VARCHAR(255) NULL,
				price DOUBLE DEFAULT 0 NOT NULL,
				joiningFee DOUBLE DEFAULT 0 NOT NULL,
				currency TEXT NULL,
				paymentRecursionType VARCHAR(100) NULL,
				paymentRecursionDuration INT NULL,
				sessionPackPlanId VARCHAR(255) NULL,
				singleMembershipPlanId VARCHAR(255) NOT NULL,
				groupMembershipPlanId VARCHAR(255) NULL,
				adminId VARCHAR(255) NOT NULL,
				countryId VARCHAR(255) NOT NULL,
				createdAt TIMESTAMP NULL,
				updatedAt TIMESTAMP NULL,
				hasEndDate VARCHAR(50) NULL,
				recursionDuration INT NULL,
				recursionPeriod VARCHAR(50) NULL,
				chargeOnFirst BOOLEAN DEFAULT false NOT NULL,
				giftPeriodFree BOOLEAN DEFAULT false NOT NULL,
				gracePeriodDays INT DEFAULT 0 NOT NULL,
				allowFreeze BOOLEAN DEFAULT false NOT NULL,
				installmentAmount DOUBLE DEFAULT 0 NULL,
				installmentFrequencyType VARCHAR(50) NULL,
				installmentRounds INT DEFAULT 0 NULL,
				surcharge DOUBLE DEFAULT 0 NULL,
				status VARCHAR(50) DEFAULT 'active' NULL,
				batchNo TEXT NULL,
				allDays BOOLEAN DEFAULT true NULL,
				days JSON DEFAULT '[]' NULL,
				` + "`interval`" + ` VARCHAR(50) DEFAULT 'day' NULL,
				numberOfCheckIns INT DEFAULT 0 NULL,
				unlimited BOOLEAN DEFAULT true NULL,
				bringGymBuddy BOOLEAN DEFAULT false NULL,
				freeOfCharge BOOLEAN DEFAULT true NULL,
				gymBuddyInterval VARCHAR(50) DEFAULT 'day' NULL,
				gymBuddyPrice FLOAT DEFAULT 0 NULL,
				numberOfTimes INT DEFAULT 0 NULL,
				customBilling FLOAT NULL,
				isOneTimeTrial BOOLEAN DEFAULT false NOT NULL
			)`},
		store.SQLite: {`
			CREATE TABLE IF NOT EXISTS PaymentPlan (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				type TEXT NULL,
				price REAL DEFAULT 0 NOT NULL,
				joiningFee REAL DEFAULT 0 NOT NULL,
				currency TEXT NULL,
				paymentRecursionType TEXT NULL,
				paymentRecursionDuration INTEGER NULL,
				sessionPackPlanId TEXT NULL,
				singleMembershipPlanId TEXT NOT NULL,
				groupMembershipPlanId TEXT NULL,
				adminId TEXT NOT NULL,
				countryId TEXT NOT NULL,
				createdAt TIMESTAMP NULL,
				updatedAt TIMESTAMP NULL,
				hasEndDate TEXT NULL,
				recursionDuration INTEGER NULL,
				recursionPeriod TEXT NULL,
				chargeOnFirst BOOLEAN DEFAULT false NOT NULL,
				giftPeriodFree BOOLEAN DEFAULT false NOT NULL,
				gracePeriodDays INTEGER DEFAULT 0 NOT NULL,
				allowFreeze BOOLEAN DEFAULT false NOT NULL,
				installmentAmount REAL DEFAULT 0 NULL,
				installmentFrequencyType TEXT NULL,
				installmentRounds INTEGER DEFAULT 0 NULL,
				surcharge REAL DEFAULT 0 NULL,
				status TEXT DEFAULT 'active' NULL,
				batchNo TEXT NULL,
				allDays BOOLEAN DEFAULT true NULL,
				days TEXT DEFAULT '[]' NULL,
				"interval" TEXT DEFAULT 'day' NULL,
				numberOfCheckIns INTEGER DEFAULT 0 NULL,
				unlimited BOOLEAN DEFAULT true NULL,
				bringGymBuddy BOOLEAN DEFAULT false NULL,
				freeOfCharge BOOLEAN DEFAULT true NULL,
				gymBuddyInterval TEXT DEFAULT 'day' NULL,
				gymBuddyPrice REAL DEFAULT 0 NULL,
				numberOfTimes INTEGER DEFAULT 0 NULL,
				customBilling REAL NULL,
				isOneTimeTrial BOOLEAN DEFAULT false NOT NULL
			)`},
	},
}
