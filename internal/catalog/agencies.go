package catalog

// Agency is a government department that owns one or more guided services.
type Agency struct {
	Name     string `json:"name"`
	NameEN   string `json:"name_en"`
	Website  string `json:"website"`
	Hotline  string `json:"hotline"`
	Services []string `json:"services"`
}

// Agencies is the static agency directory, keyed by agency id.
var Agencies = map[string]Agency{
	"jpn": {
		Name:     "Jabatan Pendaftaran Negara (JPN)",
		NameEN:   "National Registration Department",
		Website:  "https://www.jpn.gov.my",
		Hotline:  "03-8000 8000",
		Services: []string{"MyKad", "Birth Certificate", "Death Certificate", "Marriage Registration"},
	},
	"immigration": {
		Name:     "Jabatan Imigresen Malaysia",
		NameEN:   "Immigration Department of Malaysia",
		Website:  "https://www.imi.gov.my",
		Hotline:  "03-8000 8000",
		Services: []string{"Passport", "Visa", "Travel Document", "Entry Permit"},
	},
	"jpj": {
		Name:     "Jabatan Pengangkutan Jalan (JPJ)",
		NameEN:   "Road Transport Department",
		Website:  "https://www.jpj.gov.my",
		Hotline:  "03-8000 8000",
		Services: []string{"Driver's License", "Vehicle Registration", "Road Tax"},
	},
	"lhdn": {
		Name:     "Lembaga Hasil Dalam Negeri (LHDN)",
		NameEN:   "Inland Revenue Board",
		Website:  "https://www.hasil.gov.my",
		Hotline:  "03-8911 1000",
		Services: []string{"Income Tax", "Tax Filing", "Tax Refund"},
	},
	"kwsp": {
		Name:     "Kumpulan Wang Simpanan Pekerja (KWSP/EPF)",
		NameEN:   "Employees Provident Fund",
		Website:  "https://www.kwsp.gov.my",
		Hotline:  "03-8922 6000",
		Services: []string{"EPF Withdrawal", "EPF Statement", "i-Saraan"},
	},
	"perkeso": {
		Name:     "Pertubuhan Keselamatan Sosial (PERKESO/SOCSO)",
		NameEN:   "Social Security Organization",
		Website:  "https://www.perkeso.gov.my",
		Hotline:  "1-300-22-8000",
		Services: []string{"SOCSO Claims", "Employment Injury", "Invalidity Pension"},
	},
}
