package category

import "github.com/finzap/finzap/internal/model"

// SeedCategories returns the immutable default categories created at
// startup. Their keyword lists drive the primary categorization pass.
func SeedCategories() []model.Category {
	return []model.Category{
		{
			Name: "Alimentação",
			Keywords: []string{
				"restaurante", "lanche", "almoço", "jantar", "café", "mercado",
				"supermercado", "pizza", "hamburguer", "comida", "delivery",
				"ifood", "padaria", "açougue", "feira", "hortifruti",
			},
			Icon:      "utensils",
			Color:     "#e74c3c",
			IsDefault: true,
		},
		{
			Name: "Transporte",
			Keywords: []string{
				"uber", "99", "taxi", "táxi", "ônibus", "onibus", "metrô",
				"metro", "trem", "combustível", "combustivel", "gasolina",
				"álcool", "alcool", "estacionamento", "pedágio", "pedagio",
				"passagem", "bilhete", "diesel", "óleo", "oleo",
			},
			Icon:      "car",
			Color:     "#3498db",
			IsDefault: true,
		},
		{
			Name: "Vestuário",
			Keywords: []string{
				"roupa", "camisa", "camiseta", "calça", "calca", "vestido",
				"sapato", "tênis", "tenis", "meia", "cueca", "calcinha",
				"sutiã", "sutia", "jaqueta", "casaco", "blusa", "shorts",
				"bermuda", "pijama",
			},
			Icon:      "tshirt",
			Color:     "#9b59b6",
			IsDefault: true,
		},
		{
			Name: "Lazer",
			Keywords: []string{
				"cinema", "teatro", "show", "ingresso", "netflix", "spotify",
				"prime", "disney", "hbo", "jogo", "game", "livro", "revista",
				"bar", "balada", "festa", "viagem", "passeio", "parque",
			},
			Icon:      "film",
			Color:     "#f39c12",
			IsDefault: true,
		},
		{
			Name: "Saúde",
			Keywords: []string{
				"remédio", "remedio", "farmácia", "farmacia", "médico",
				"medico", "consulta", "exame", "hospital", "dentista",
				"psicólogo", "psicologo", "terapia", "academia", "vitamina",
				"suplemento",
			},
			Icon:      "heartbeat",
			Color:     "#2ecc71",
			IsDefault: true,
		},
		{
			Name: "Educação",
			Keywords: []string{
				"escola", "faculdade", "universidade", "curso",
				"livro didático", "material escolar", "mensalidade", "aula",
				"professor", "tutor", "apostila", "caderno", "caneta",
			},
			Icon:      "graduation-cap",
			Color:     "#1abc9c",
			IsDefault: true,
		},
		{
			Name: "Moradia",
			Keywords: []string{
				"aluguel", "condomínio", "condominio", "iptu", "reforma",
				"móveis", "moveis", "decoração", "decoracao",
				"eletrodoméstico", "eletrodomestico", "casa", "apartamento",
			},
			Icon:      "home",
			Color:     "#34495e",
			IsDefault: true,
		},
		{
			Name: "Contas",
			Keywords: []string{
				"luz", "água", "agua", "gás", "gas", "internet", "telefone",
				"celular", "tv", "streaming", "conta", "boleto", "fatura",
			},
			Icon:      "file-invoice-dollar",
			Color:     "#7f8c8d",
			IsDefault: true,
		},
		{
			Name:      "Outros",
			Keywords:  []string{},
			Icon:      "ellipsis-h",
			Color:     "#95a5a6",
			IsDefault: true,
		},
	}
}

// staticMapping pairs a trigger word with the category name it derives.
// Checked in order after the persisted categories miss, covering common
// words not yet promoted to persisted keywords.
type staticMapping struct {
	keyword  string
	category string
}

var staticMappings = []staticMapping{
	{"gasolina", "Transporte"},
	{"combustível", "Transporte"},
	{"combustivel", "Transporte"},
	{"uber", "Transporte"},
	{"taxi", "Transporte"},
	{"ônibus", "Transporte"},
	{"onibus", "Transporte"},
	{"metrô", "Transporte"},
	{"metro", "Transporte"},
	{"passagem", "Transporte"},
	{"diesel", "Transporte"},
	{"óleo", "Transporte"},
	{"oleo", "Transporte"},

	{"mercado", "Alimentação"},
	{"supermercado", "Alimentação"},
	{"restaurante", "Alimentação"},
	{"lanche", "Alimentação"},
	{"comida", "Alimentação"},
	{"almoço", "Alimentação"},
	{"jantar", "Alimentação"},
	{"café", "Alimentação"},
	{"cafe", "Alimentação"},
	{"padaria", "Alimentação"},

	{"roupa", "Vestuário"},
	{"camisa", "Vestuário"},
	{"calça", "Vestuário"},
	{"calca", "Vestuário"},
	{"sapato", "Vestuário"},
	{"tênis", "Vestuário"},
	{"tenis", "Vestuário"},

	{"cinema", "Lazer"},
	{"teatro", "Lazer"},
	{"show", "Lazer"},
	{"jogo", "Lazer"},
	{"viagem", "Lazer"},
	{"passeio", "Lazer"},

	{"remédio", "Saúde"},
	{"remedio", "Saúde"},
	{"médico", "Saúde"},
	{"medico", "Saúde"},
	{"consulta", "Saúde"},
	{"exame", "Saúde"},
	{"farmácia", "Saúde"},
	{"farmacia", "Saúde"},

	{"escola", "Educação"},
	{"faculdade", "Educação"},
	{"curso", "Educação"},
	{"livro", "Educação"},
	{"material", "Educação"},

	{"aluguel", "Moradia"},
	{"condomínio", "Moradia"},
	{"condominio", "Moradia"},
	{"casa", "Moradia"},
	{"apartamento", "Moradia"},
	{"reforma", "Moradia"},

	{"luz", "Contas"},
	{"água", "Contas"},
	{"agua", "Contas"},
	{"gás", "Contas"},
	{"gas", "Contas"},
	{"internet", "Contas"},
	{"telefone", "Contas"},
	{"celular", "Contas"},
}

// fallbackCategoryName is used when nothing in the description can name a
// category.
const fallbackCategoryName = "Outros"

// palette holds the colors assigned to runtime-created categories.
var palette = []string{
	"#3498db", "#2ecc71", "#e74c3c", "#f39c12", "#9b59b6",
	"#1abc9c", "#34495e", "#7f8c8d", "#d35400", "#c0392b",
	"#16a085", "#27ae60", "#2980b9", "#8e44ad", "#f1c40f",
}
