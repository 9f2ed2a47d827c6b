// Package catalogdata holds the curated artist roster the game draws its
// song pools and distractors from. Entries are grouped by genre; gender is
// used to tier artist distractors (same category + same gender first).
package catalogdata

import "github.com/tejashwikalptaru/superquiz/internal/domain"

// Roster returns the full artist roster as a fresh slice. Callers may
// shuffle or filter the result freely.
func Roster() []domain.Artist {
	out := make([]domain.Artist, len(roster))
	copy(out, roster)
	return out
}

// ByGenre returns the roster entries for one genre. GenreAll returns the
// whole roster.
func ByGenre(genre domain.Genre) []domain.Artist {
	if genre == domain.GenreAll {
		return Roster()
	}
	var out []domain.Artist
	for _, a := range roster {
		if a.Category == genre {
			out = append(out, a)
		}
	}
	return out
}

var roster = []domain.Artist{
	// Sertanejo
	{Name: "Marília Mendonça", Category: domain.GenreSertanejo, Gender: domain.GenderFemale},
	{Name: "Gusttavo Lima", Category: domain.GenreSertanejo, Gender: domain.GenderMale},
	{Name: "Henrique e Juliano", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Jorge e Mateus", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Maiara e Maraisa", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Zé Neto e Cristiano", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Luan Santana", Category: domain.GenreSertanejo, Gender: domain.GenderMale},
	{Name: "Ana Castela", Category: domain.GenreSertanejo, Gender: domain.GenderFemale},
	{Name: "Simone Mendes", Category: domain.GenreSertanejo, Gender: domain.GenderFemale},
	{Name: "Wesley Safadão", Category: domain.GenreSertanejo, Gender: domain.GenderMale},
	{Name: "Matheus e Kauan", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Bruno e Marrone", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Zezé Di Camargo e Luciano", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Chitãozinho e Xororó", Category: domain.GenreSertanejo, Gender: domain.GenderGroup},
	{Name: "Michel Teló", Category: domain.GenreSertanejo, Gender: domain.GenderMale},
	{Name: "Lauana Prado", Category: domain.GenreSertanejo, Gender: domain.GenderFemale},
	{Name: "Paula Fernandes", Category: domain.GenreSertanejo, Gender: domain.GenderFemale},
	{Name: "Leonardo", Category: domain.GenreSertanejo, Gender: domain.GenderMale},

	// Pagode / samba
	{Name: "Thiaguinho", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Ferrugem", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Péricles", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Turma do Pagode", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Sorriso Maroto", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Menos é Mais", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Grupo Revelação", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Exaltasamba", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Dilsinho", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Zeca Pagodinho", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Raça Negra", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Fundo de Quintal", Category: domain.GenrePagode, Gender: domain.GenderGroup},
	{Name: "Mumuzinho", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Belo", Category: domain.GenrePagode, Gender: domain.GenderMale},
	{Name: "Alcione", Category: domain.GenrePagode, Gender: domain.GenderFemale},
	{Name: "Ludmilla", Category: domain.GenrePagode, Gender: domain.GenderFemale},

	// Brazilian pop / funk
	{Name: "Anitta", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Luísa Sonza", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Pabllo Vittar", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Iza", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Jão", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "Vitão", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "MC Kevinho", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "Kevin o Chris", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "Pedro Sampaio", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "Dennis DJ", Category: domain.GenrePopBR, Gender: domain.GenderMale},
	{Name: "Marina Sena", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Duda Beat", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Gloria Groove", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Lexa", Category: domain.GenrePopBR, Gender: domain.GenderFemale},
	{Name: "Simone e Simaria", Category: domain.GenrePopBR, Gender: domain.GenderGroup},

	// Gospel
	{Name: "Aline Barros", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Fernandinho", Category: domain.GenreGospel, Gender: domain.GenderMale},
	{Name: "Gabriela Rocha", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Isadora Pompeo", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Preto no Branco", Category: domain.GenreGospel, Gender: domain.GenderGroup},
	{Name: "Diante do Trono", Category: domain.GenreGospel, Gender: domain.GenderGroup},
	{Name: "Bruna Karla", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Thalles Roberto", Category: domain.GenreGospel, Gender: domain.GenderMale},
	{Name: "Eli Soares", Category: domain.GenreGospel, Gender: domain.GenderMale},
	{Name: "Midian Lima", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Cassiane", Category: domain.GenreGospel, Gender: domain.GenderFemale},
	{Name: "Anderson Freire", Category: domain.GenreGospel, Gender: domain.GenderMale},
	{Name: "Morada", Category: domain.GenreGospel, Gender: domain.GenderGroup},
	{Name: "Casa Worship", Category: domain.GenreGospel, Gender: domain.GenderGroup},

	// International pop
	{Name: "Taylor Swift", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Dua Lipa", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Ariana Grande", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Billie Eilish", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "The Weeknd", Category: domain.GenrePopIntl, Gender: domain.GenderMale},
	{Name: "Ed Sheeran", Category: domain.GenrePopIntl, Gender: domain.GenderMale},
	{Name: "Bruno Mars", Category: domain.GenrePopIntl, Gender: domain.GenderMale},
	{Name: "Justin Bieber", Category: domain.GenrePopIntl, Gender: domain.GenderMale},
	{Name: "Harry Styles", Category: domain.GenrePopIntl, Gender: domain.GenderMale},
	{Name: "Olivia Rodrigo", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Rihanna", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Adele", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Coldplay", Category: domain.GenrePopIntl, Gender: domain.GenderGroup},
	{Name: "Imagine Dragons", Category: domain.GenrePopIntl, Gender: domain.GenderGroup},
	{Name: "Maroon 5", Category: domain.GenrePopIntl, Gender: domain.GenderGroup},
	{Name: "BTS", Category: domain.GenrePopIntl, Gender: domain.GenderGroup},
	{Name: "Lady Gaga", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},
	{Name: "Miley Cyrus", Category: domain.GenrePopIntl, Gender: domain.GenderFemale},

	// Rock / MPB
	{Name: "Legião Urbana", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Os Paralamas do Sucesso", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Skank", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Titãs", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Capital Inicial", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Charlie Brown Jr.", Category: domain.GenreRockMPB, Gender: domain.GenderGroup},
	{Name: "Cazuza", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Djavan", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Caetano Veloso", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Gilberto Gil", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Marisa Monte", Category: domain.GenreRockMPB, Gender: domain.GenderFemale},
	{Name: "Elis Regina", Category: domain.GenreRockMPB, Gender: domain.GenderFemale},
	{Name: "Gal Costa", Category: domain.GenreRockMPB, Gender: domain.GenderFemale},
	{Name: "Chico Buarque", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Tim Maia", Category: domain.GenreRockMPB, Gender: domain.GenderMale},
	{Name: "Rita Lee", Category: domain.GenreRockMPB, Gender: domain.GenderFemale},

	// Flashback
	{Name: "Michael Jackson", Category: domain.GenreFlashback, Gender: domain.GenderMale},
	{Name: "Madonna", Category: domain.GenreFlashback, Gender: domain.GenderFemale},
	{Name: "Queen", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "ABBA", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Bee Gees", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Whitney Houston", Category: domain.GenreFlashback, Gender: domain.GenderFemale},
	{Name: "Cyndi Lauper", Category: domain.GenreFlashback, Gender: domain.GenderFemale},
	{Name: "A-ha", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Bon Jovi", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Guns N' Roses", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Backstreet Boys", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Spice Girls", Category: domain.GenreFlashback, Gender: domain.GenderGroup},
	{Name: "Britney Spears", Category: domain.GenreFlashback, Gender: domain.GenderFemale},
	{Name: "George Michael", Category: domain.GenreFlashback, Gender: domain.GenderMale},
	{Name: "Elton John", Category: domain.GenreFlashback, Gender: domain.GenderMale},
	{Name: "Tina Turner", Category: domain.GenreFlashback, Gender: domain.GenderFemale},

	// TikTok hits
	{Name: "Doja Cat", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "Lil Nas X", Category: domain.GenreTikTok, Gender: domain.GenderMale},
	{Name: "Sabrina Carpenter", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "Tate McRae", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "Jack Harlow", Category: domain.GenreTikTok, Gender: domain.GenderMale},
	{Name: "Ice Spice", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "PinkPantheress", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "Benson Boone", Category: domain.GenreTikTok, Gender: domain.GenderMale},
	{Name: "Chappell Roan", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "MC Livinho", Category: domain.GenreTikTok, Gender: domain.GenderMale},
	{Name: "Treyce", Category: domain.GenreTikTok, Gender: domain.GenderFemale},
	{Name: "L7nnon", Category: domain.GenreTikTok, Gender: domain.GenderMale},
	{Name: "Glass Animals", Category: domain.GenreTikTok, Gender: domain.GenderGroup},
	{Name: "Måneskin", Category: domain.GenreTikTok, Gender: domain.GenderGroup},
}
