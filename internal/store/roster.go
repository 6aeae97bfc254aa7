package store

// DefaultRoster is the membership list used to seed an empty member range.
// Order matters: seeded ids are assigned sequentially from 1. The list is
// taken as-is from the administration's records, duplicates included.
var DefaultRoster = []string{
	"AGAM FARROS ADHYASTA HAKIM", "AHMAD BISRI AS'ARI", "AHMAD IZZUDDIN ZAINI", "AKMAL MIZHU DAIJI",
	"AL GHAZI RYANDRI SYA'BANA", "ALVIS ZULFIKAR SIDIK", "ARFAN BAIHAQI", "BAGAS RESTU WIJAYA",
	"FAAZ HADYAN NUR PRADITYA", "FALIH ARSYAD ILYASA", "FATIH ALFA YASYA", "FAWWAZ IRHAM BILAL",
	"GILANG NURFI RAMADHANI", "KEANO ZAKY ALHABSYI", "LAINUFAR IFTIKAR ZAIN", "M FATA ADZ DZAKI",
	"MAGHFI CAHYA RAMADANA", "MAITSAHAFIZH LUBNA HILMI", "MATSNA MUNA ZAHRAN", "MUCHAMMAD ARIFIN ILHAM",
	"MUHAMMAD AR RA'UF PUTRA AGUSNI", "VINO WAHYU DIARTAMA", "FACHRI RAMADHAN SYAHPUTRA", "AFZAN KHOIRONI ABADI",
	"AHMAD RIFQI ALI", "ARFAN IZZUL HAQ", "MUHAMMAD AUFA WIJDAN", "MUHAMMAD 'AZZAM MUWAFFIQ",
	"MUHAMMAD BINTANG RAHMATULLOH", "MUHAMMAD DAFFA RAMADHAN", "MUHAMMAD HAMIZAL FADLI", "MUHAMMAD RAFIF ULIL ALBAB",
	"MUHAMMAD SHODEK", "MUHAMMAD SYIFA'I", "MUJIB RIDWAN HARTONO", "NADHINDRA RADITYA NATAMA",
	"NAUFAL RIZQY AL FAKHRI", "NAUFAL YUDHA PRATAMA", "RAFIF HAFIY KARIM", "RAIHAN DANI NASRULLOH",
	"RIDHO AKBAR MAULANA", "RIFQI SUFYAN MUZAKI", "USRIYA AHMAD", "WAHIB EFENDI",
	"WISNU SUJUD ANGGARA", "ZAKIY MAULANA HASAN", "ALEO RAFIF SAPUTRA", "ALVINO GHANI RIZQ PUTRA SAMUDRA",
	"ARKAN HIBATULLAH", "BRILLIANT DANNIZ APRILLIO", "CELESTA DZAKY XYLOPIO", "DIMAS GUNTUR MULYONO",
	"FACHRI RAMADHAN SYAHPUTRA", "FAJAR SYAPUTRA PRATAMA", "HANIF HAZZA ABDUHU YASYKUR", "HUDA MAHDI SUKLA ASSAJID",
	"MAHBUBI SYABANA", "MOCHAMMAD FAIRLY UNO AZFAR", "MUHAMMAD BAYU AZANDY", "MUHAMMAD GALANG AHZA AZZAMI",
	"NICO PUTRA FERDIANSYAH", "NIZAR ALI", "RAFFASYA ATHARRAYHAN ARDANA", "RAFID ARHAB MULIA",
	"RASYID NASRULLAH", "SURYA ADI NUGROHO", "ZAZINUL MUSTHOFA SABIKIS", "ZULFAN NUR FAUZI",
}
