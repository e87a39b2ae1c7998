package rubric

// Project kind registry keys.
const (
	KindPedagogical = "pedagogical"
	KindManagement  = "management"
	KindTechnology  = "technology"
	KindCommunity   = "community"
)

// The upstream analysis service was built against the Spanish questionnaire
// and is known to decorate section keys with emoji in some deployments, so
// every criterion and indicator lists all key spellings seen in the wild.

// Pedagogical is the pedagogical-innovation rubric (5 criteria, 75 points).
var Pedagogical = Variant{
	Kind: KindPedagogical,
	Name: "Pedagogical innovation",
	Criteria: []Criterion{
		{
			Key:         "intentionality",
			Title:       "Intentionality",
			PayloadKeys: []string{"intentionality", "intencionalidad", "🎯 Intencionalidad"},
			Fields:      []string{"problem", "objectives", "evidence"},
			Mandatory:   []string{"problem", "objectives"},
			Aliases: map[string][]string{
				"problem":    {"intencionalidad_problema", "descripcion_problema", "problema"},
				"objectives": {"intencionalidad_objetivos", "objetivos"},
				"evidence":   {"intencionalidad_evidencias", "evidencias_necesidad"},
			},
			Indicators: []Indicator{
				{Key: "problem_definition", PayloadKeys: []string{"problem_definition", "definicion_problema", "📌 Definición del problema"}, Max: 5},
				{Key: "objective_alignment", PayloadKeys: []string{"objective_alignment", "alineacion_objetivos"}, Max: 5},
				{Key: "needs_evidence", PayloadKeys: []string{"needs_evidence", "evidencia_necesidad"}, Max: 5},
			},
		},
		{
			Key:         "originality",
			Title:       "Originality",
			PayloadKeys: []string{"originality", "originalidad", "💡 Originalidad"},
			Fields:      []string{"description", "differentiation"},
			Mandatory:   []string{"description"},
			Aliases: map[string][]string{
				"description":     {"originalidad_descripcion", "descripcion_innovacion"},
				"differentiation": {"originalidad_diferencia", "diferenciacion"},
			},
			Indicators: []Indicator{
				{Key: "novelty", PayloadKeys: []string{"novelty", "novedad"}, Max: 5},
				{Key: "creativity", PayloadKeys: []string{"creativity", "creatividad"}, Max: 5},
				{Key: "context_fit", PayloadKeys: []string{"context_fit", "pertinencia"}, Max: 5},
			},
		},
		{
			Key:         "impact",
			Title:       "Impact",
			PayloadKeys: []string{"impact", "impacto", "📈 Impacto"},
			Fields:      []string{"results", "beneficiaries", "measurement"},
			Mandatory:   []string{"results", "beneficiaries"},
			Aliases: map[string][]string{
				"results":       {"impacto_resultados", "resultados"},
				"beneficiaries": {"impacto_beneficiarios", "beneficiarios"},
				"measurement":   {"impacto_medicion", "medicion"},
			},
			Indicators: []Indicator{
				{Key: "learning_results", PayloadKeys: []string{"learning_results", "resultados_aprendizaje"}, Max: 5},
				{Key: "coverage", PayloadKeys: []string{"coverage", "cobertura"}, Max: 5},
				{Key: "result_evidence", PayloadKeys: []string{"result_evidence", "evidencia_resultados"}, Max: 5},
			},
		},
		{
			Key:           "sustainability",
			Title:         "Sustainability",
			PayloadKeys:   []string{"sustainability", "sostenibilidad", "🌱 Sostenibilidad"},
			Fields:        []string{"viability", "continuity"},
			Mandatory:     []string{"viability"},
			ResourceTable: true,
			Aliases: map[string][]string{
				"viability":  {"sostenibilidad_viabilidad", "viabilidad"},
				"continuity": {"sostenibilidad_continuidad", "continuidad"},
			},
			Indicators: []Indicator{
				{Key: "viability", PayloadKeys: []string{"viability", "viabilidad"}, Max: 5},
				{Key: "resource_planning", PayloadKeys: []string{"resource_planning", "planificacion_recursos"}, Max: 5},
				{Key: "continuity", PayloadKeys: []string{"continuity", "continuidad"}, Max: 5},
			},
		},
		{
			Key:         "reflection",
			Title:       "Reflection",
			PayloadKeys: []string{"reflection", "reflexion", "🪞 Reflexión"},
			Fields:      []string{"documentation", "lessons"},
			Mandatory:   []string{"lessons"},
			Aliases: map[string][]string{
				"documentation": {"reflexion_documentacion", "documentacion"},
				"lessons":       {"reflexion_lecciones", "lecciones_aprendidas"},
			},
			Indicators: []Indicator{
				{Key: "documentation", PayloadKeys: []string{"documentation", "documentacion"}, Max: 5},
				{Key: "lessons", PayloadKeys: []string{"lessons", "lecciones"}, Max: 5},
				{Key: "improvement", PayloadKeys: []string{"improvement", "mejora_continua"}, Max: 5},
			},
		},
	},
}

// Management is the institutional-management rubric (4 criteria, 60 points).
var Management = Variant{
	Kind: KindManagement,
	Name: "Institutional management innovation",
	Criteria: []Criterion{
		{
			Key:         "intentionality",
			Title:       "Intentionality",
			PayloadKeys: []string{"intentionality", "intencionalidad", "🎯 Intencionalidad"},
			Fields:      []string{"problem", "objectives"},
			Mandatory:   []string{"problem", "objectives"},
			Aliases: map[string][]string{
				"problem":    {"gestion_problema", "descripcion_problema", "problema"},
				"objectives": {"gestion_objetivos", "objetivos"},
			},
			Indicators: []Indicator{
				{Key: "problem_definition", PayloadKeys: []string{"problem_definition", "definicion_problema"}, Max: 5},
				{Key: "objective_alignment", PayloadKeys: []string{"objective_alignment", "alineacion_objetivos"}, Max: 5},
				{Key: "needs_evidence", PayloadKeys: []string{"needs_evidence", "evidencia_necesidad"}, Max: 5},
			},
		},
		{
			Key:         "organization",
			Title:       "Organization",
			PayloadKeys: []string{"organization", "organizacion", "🏛️ Organización"},
			Fields:      []string{"processes", "roles"},
			Mandatory:   []string{"processes"},
			Aliases: map[string][]string{
				"processes": {"organizacion_procesos", "procesos"},
				"roles":     {"organizacion_roles", "roles"},
			},
			Indicators: []Indicator{
				{Key: "process_redesign", PayloadKeys: []string{"process_redesign", "rediseno_procesos"}, Max: 5},
				{Key: "role_clarity", PayloadKeys: []string{"role_clarity", "claridad_roles"}, Max: 5},
				{Key: "institutionalization", PayloadKeys: []string{"institutionalization", "institucionalizacion"}, Max: 5},
			},
		},
		{
			Key:         "participation",
			Title:       "Participation",
			PayloadKeys: []string{"participation", "participacion", "🤝 Participación"},
			Fields:      []string{"actors", "mechanisms"},
			Mandatory:   []string{"actors"},
			Aliases: map[string][]string{
				"actors":     {"participacion_actores", "actores"},
				"mechanisms": {"participacion_mecanismos", "mecanismos"},
			},
			Indicators: []Indicator{
				{Key: "actor_diversity", PayloadKeys: []string{"actor_diversity", "diversidad_actores"}, Max: 5},
				{Key: "engagement", PayloadKeys: []string{"engagement", "involucramiento"}, Max: 5},
				{Key: "feedback_channels", PayloadKeys: []string{"feedback_channels", "canales_retroalimentacion"}, Max: 5},
			},
		},
		{
			Key:           "sustainability",
			Title:         "Sustainability",
			PayloadKeys:   []string{"sustainability", "sostenibilidad", "🌱 Sostenibilidad"},
			Fields:        []string{"viability"},
			Mandatory:     []string{"viability"},
			ResourceTable: true,
			Aliases: map[string][]string{
				"viability": {"sostenibilidad_viabilidad", "viabilidad"},
			},
			Indicators: []Indicator{
				{Key: "viability", PayloadKeys: []string{"viability", "viabilidad"}, Max: 5},
				{Key: "resource_planning", PayloadKeys: []string{"resource_planning", "planificacion_recursos"}, Max: 5},
				{Key: "continuity", PayloadKeys: []string{"continuity", "continuidad"}, Max: 5},
			},
		},
	},
}

// Technology is the technological-innovation rubric (5 criteria, 80 points).
var Technology = Variant{
	Kind: KindTechnology,
	Name: "Technological innovation",
	Criteria: []Criterion{
		{
			Key:         "intentionality",
			Title:       "Intentionality",
			PayloadKeys: []string{"intentionality", "intencionalidad", "🎯 Intencionalidad"},
			Fields:      []string{"problem", "objectives", "evidence", "scope"},
			Mandatory:   []string{"problem", "objectives", "scope"},
			Aliases: map[string][]string{
				"problem":    {"tecnologia_problema", "descripcion_problema", "problema"},
				"objectives": {"tecnologia_objetivos", "objetivos"},
				"evidence":   {"tecnologia_evidencias", "evidencias_necesidad"},
				"scope":      {"tecnologia_alcance", "alcance"},
			},
			Indicators: []Indicator{
				{Key: "problem_definition", PayloadKeys: []string{"problem_definition", "definicion_problema"}, Max: 5},
				{Key: "objective_alignment", PayloadKeys: []string{"objective_alignment", "alineacion_objetivos"}, Max: 5},
				{Key: "needs_evidence", PayloadKeys: []string{"needs_evidence", "evidencia_necesidad"}, Max: 5},
				{Key: "scope_definition", PayloadKeys: []string{"scope_definition", "definicion_alcance"}, Max: 5},
			},
		},
		{
			Key:         "originality",
			Title:       "Originality",
			PayloadKeys: []string{"originality", "originalidad", "💡 Originalidad"},
			Fields:      []string{"description", "differentiation"},
			Mandatory:   []string{"description"},
			Aliases: map[string][]string{
				"description":     {"originalidad_descripcion", "descripcion_innovacion"},
				"differentiation": {"originalidad_diferencia", "diferenciacion"},
			},
			Indicators: []Indicator{
				{Key: "novelty", PayloadKeys: []string{"novelty", "novedad"}, Max: 5},
				{Key: "creativity", PayloadKeys: []string{"creativity", "creatividad"}, Max: 5},
				{Key: "context_fit", PayloadKeys: []string{"context_fit", "pertinencia"}, Max: 5},
			},
		},
		{
			Key:         "functionality",
			Title:       "Functionality",
			PayloadKeys: []string{"functionality", "funcionalidad", "⚙️ Funcionalidad"},
			Fields:      []string{"solution", "usability"},
			Mandatory:   []string{"solution"},
			Aliases: map[string][]string{
				"solution":  {"funcionalidad_solucion", "solucion"},
				"usability": {"funcionalidad_usabilidad", "usabilidad"},
			},
			Indicators: []Indicator{
				{Key: "technical_fit", PayloadKeys: []string{"technical_fit", "adecuacion_tecnica"}, Max: 5},
				{Key: "usability", PayloadKeys: []string{"usability", "usabilidad"}, Max: 5},
				{Key: "accessibility", PayloadKeys: []string{"accessibility", "accesibilidad"}, Max: 5},
			},
		},
		{
			Key:         "impact",
			Title:       "Impact",
			PayloadKeys: []string{"impact", "impacto", "📈 Impacto"},
			Fields:      []string{"results", "beneficiaries"},
			Mandatory:   []string{"results"},
			Aliases: map[string][]string{
				"results":       {"impacto_resultados", "resultados"},
				"beneficiaries": {"impacto_beneficiarios", "beneficiarios"},
			},
			Indicators: []Indicator{
				{Key: "learning_results", PayloadKeys: []string{"learning_results", "resultados_aprendizaje"}, Max: 5},
				{Key: "coverage", PayloadKeys: []string{"coverage", "cobertura"}, Max: 5},
				{Key: "result_evidence", PayloadKeys: []string{"result_evidence", "evidencia_resultados"}, Max: 5},
			},
		},
		{
			Key:           "sustainability",
			Title:         "Sustainability",
			PayloadKeys:   []string{"sustainability", "sostenibilidad", "🌱 Sostenibilidad"},
			Fields:        []string{"viability", "maintenance"},
			Mandatory:     []string{"viability"},
			ResourceTable: true,
			Aliases: map[string][]string{
				"viability":   {"sostenibilidad_viabilidad", "viabilidad"},
				"maintenance": {"sostenibilidad_mantenimiento", "mantenimiento"},
			},
			Indicators: []Indicator{
				{Key: "viability", PayloadKeys: []string{"viability", "viabilidad"}, Max: 5},
				{Key: "resource_planning", PayloadKeys: []string{"resource_planning", "planificacion_recursos"}, Max: 5},
				{Key: "continuity", PayloadKeys: []string{"continuity", "continuidad"}, Max: 5},
			},
		},
	},
}

// Community is the community-engagement rubric (4 criteria, 55 points).
var Community = Variant{
	Kind: KindCommunity,
	Name: "Community engagement innovation",
	Criteria: []Criterion{
		{
			Key:         "intentionality",
			Title:       "Intentionality",
			PayloadKeys: []string{"intentionality", "intencionalidad", "🎯 Intencionalidad"},
			Fields:      []string{"problem", "objectives"},
			Mandatory:   []string{"problem", "objectives"},
			Aliases: map[string][]string{
				"problem":    {"comunidad_problema", "descripcion_problema", "problema"},
				"objectives": {"comunidad_objetivos", "objetivos"},
			},
			Indicators: []Indicator{
				{Key: "problem_definition", PayloadKeys: []string{"problem_definition", "definicion_problema"}, Max: 5},
				{Key: "objective_alignment", PayloadKeys: []string{"objective_alignment", "alineacion_objetivos"}, Max: 5},
				{Key: "needs_evidence", PayloadKeys: []string{"needs_evidence", "evidencia_necesidad"}, Max: 5},
			},
		},
		{
			Key:         "participation",
			Title:       "Participation",
			PayloadKeys: []string{"participation", "participacion", "🤝 Participación"},
			Fields:      []string{"actors", "mechanisms"},
			Mandatory:   []string{"actors"},
			Aliases: map[string][]string{
				"actors":     {"participacion_actores", "actores"},
				"mechanisms": {"participacion_mecanismos", "mecanismos"},
			},
			Indicators: []Indicator{
				{Key: "actor_diversity", PayloadKeys: []string{"actor_diversity", "diversidad_actores"}, Max: 5},
				{Key: "engagement", PayloadKeys: []string{"engagement", "involucramiento"}, Max: 5},
				{Key: "feedback_channels", PayloadKeys: []string{"feedback_channels", "canales_retroalimentacion"}, Max: 5},
			},
		},
		{
			Key:         "impact",
			Title:       "Impact",
			PayloadKeys: []string{"impact", "impacto", "📈 Impacto"},
			Fields:      []string{"results", "beneficiaries"},
			Mandatory:   []string{"results"},
			Aliases: map[string][]string{
				"results":       {"impacto_resultados", "resultados"},
				"beneficiaries": {"impacto_beneficiarios", "beneficiarios"},
			},
			Indicators: []Indicator{
				{Key: "community_results", PayloadKeys: []string{"community_results", "resultados_comunidad"}, Max: 5},
				{Key: "coverage", PayloadKeys: []string{"coverage", "cobertura"}, Max: 5},
				{Key: "result_evidence", PayloadKeys: []string{"result_evidence", "evidencia_resultados"}, Max: 5},
			},
		},
		{
			Key:           "sustainability",
			Title:         "Sustainability",
			PayloadKeys:   []string{"sustainability", "sostenibilidad", "🌱 Sostenibilidad"},
			Fields:        []string{"viability"},
			Mandatory:     []string{"viability"},
			ResourceTable: true,
			Aliases: map[string][]string{
				"viability": {"sostenibilidad_viabilidad", "viabilidad"},
			},
			Indicators: []Indicator{
				{Key: "viability", PayloadKeys: []string{"viability", "viabilidad"}, Max: 5},
				{Key: "resource_planning", PayloadKeys: []string{"resource_planning", "planificacion_recursos"}, Max: 5},
			},
		},
	},
}
