package domain

// DefaultNiches returns the catalog seeded on first boot. Admins can edit
// or delete any of these; ResetToDefaults restores them.
func DefaultNiches() []*Niche {
	return []*Niche{
		{
			ID:           "medico",
			Name:         "Médico",
			Description:  "Clínica médica com agendamentos e triagem inteligente",
			Icon:         "Stethoscope",
			AgentName:    "Dr. Assistente",
			Tone:         ToneFormal,
			SystemPrompt: "Você é um assistente virtual de uma clínica médica. Seja profissional, empático e oriente sobre agendamentos e procedimentos. Nunca dê diagnósticos.",
			Onboarding: OnboardingScript{
				Greeting:       "Olá! Eu sou {AGENT_NAME}, assistente virtual da clínica. Estou aqui para ajudá-lo. Qual é o seu nome?",
				AskName:        "Qual é o seu nome?",
				AskBusiness:    "Perfeito, {USER_NAME}! Qual é o nome da clínica que você está buscando atendimento?",
				BusinessLabel:  "clínica",
				AskExtra:       "Entendi! Qual a especialidade médica que você precisa? (cardiologia, dermatologia, clínico geral...)",
				ExtraFieldName: "especialidade",
			},
			Intents: []Intent{
				{ID: "agendar", Name: "Agendar consulta", Keywords: []string{"agendar", "marcar", "consulta", "horário", "disponibilidade"}, Template: "Claro, {USER_NAME}! Para agendar uma consulta de {EXTRA_VALUE} na {BUSINESS_NAME}, preciso verificar a disponibilidade. Você prefere manhã ou tarde? ✅ Anotado (demo): Interesse em agendamento de {EXTRA_VALUE}"},
				{ID: "valores", Name: "Valores", Keywords: []string{"valor", "preço", "custo", "quanto", "convênio", "plano"}, Template: "Os valores das consultas variam por especialidade e convênio, {USER_NAME}. A {BUSINESS_NAME} trabalha com diversos planos. Posso verificar se seu convênio é aceito. Qual é o seu plano de saúde?"},
				{ID: "endereco", Name: "Endereço/Horário", Keywords: []string{"endereço", "onde", "localização", "horário", "funcionamento"}, Template: "A {BUSINESS_NAME} funciona de segunda a sexta, das 8h às 18h. Posso enviar a localização exata para você, {USER_NAME}. Prefere por WhatsApp?"},
				{ID: "urgencia", Name: "Urgência", Keywords: []string{"urgente", "emergência", "dor", "grave", "agora"}, Template: "{USER_NAME}, para casos de urgência, recomendo ir diretamente ao pronto-socorro mais próximo. Se for algo que pode aguardar, posso tentar encaixar uma consulta para hoje na {BUSINESS_NAME}."},
				{ID: "humano", Name: "Falar com atendente", Keywords: []string{"atendente", "humano", "pessoa", "falar com alguém"}, Template: "Entendo, {USER_NAME}! Vou transferir você para um atendente da {BUSINESS_NAME}. Aguarde um momento. ✅ Anotado (demo): Solicitação de atendimento humano"},
			},
			QuickReplies: []QuickReply{
				{ID: "qr1", Label: "Agendar consulta", Message: "Quero agendar uma consulta"},
				{ID: "qr2", Label: "Ver valores", Message: "Quais são os valores?"},
				{ID: "qr3", Label: "Horário de funcionamento", Message: "Qual o horário de funcionamento?"},
				{ID: "qr4", Label: "Falar com atendente", Message: "Quero falar com um atendente"},
			},
			Rules:        Rules{UseVariables: true, OneQuestionAtTime: true, SuggestNextSteps: true, KeepResponsesShort: true},
			Restrictions: "Nunca forneça diagnósticos médicos. Sempre oriente a buscar um profissional.",
		},
		{
			ID:           "odonto",
			Name:         "Odonto",
			Description:  "Clínica odontológica especializada",
			Icon:         "Smile",
			AgentName:    "Dra. Sorriso",
			Tone:         ToneFriendly,
			SystemPrompt: "Você é assistente de uma clínica odontológica. Seja simpático, tire dúvidas sobre procedimentos e ajude com agendamentos.",
			Onboarding: OnboardingScript{
				Greeting:       "Olá! 😁 Eu sou {AGENT_NAME}, sua assistente virtual. Como posso ajudar você hoje? Me conta seu nome!",
				AskName:        "Qual é o seu nome?",
				AskBusiness:    "Prazer, {USER_NAME}! Qual é o nome da clínica odontológica que você procura?",
				BusinessLabel:  "clínica",
				AskExtra:       "Qual procedimento te interessa? (implante, protocolo, limpeza, clareamento...)",
				ExtraFieldName: "procedimento",
			},
			Intents: []Intent{
				{ID: "agendar", Name: "Agendar", Keywords: []string{"agendar", "marcar", "consulta", "avaliação"}, Template: "Perfeito, {USER_NAME}! Vou verificar os horários disponíveis para {EXTRA_VALUE} na {BUSINESS_NAME}. Você prefere manhã ou tarde? ✅ Anotado (demo): Agendamento de {EXTRA_VALUE}"},
				{ID: "valores", Name: "Valores", Keywords: []string{"valor", "preço", "quanto custa", "orçamento"}, Template: "Para {EXTRA_VALUE}, o valor na {BUSINESS_NAME} varia conforme a avaliação, {USER_NAME}. Posso agendar uma avaliação gratuita para você ter o orçamento exato!"},
				{ID: "endereco", Name: "Endereço", Keywords: []string{"endereço", "onde", "localização"}, Template: "A {BUSINESS_NAME} fica em localização privilegiada! Posso enviar o endereço e o mapa, {USER_NAME}?"},
				{ID: "humano", Name: "Atendente", Keywords: []string{"atendente", "humano", "pessoa"}, Template: "Vou chamar alguém da equipe, {USER_NAME}! Só um momento. ✅ Anotado (demo): Transferir para atendente"},
			},
			QuickReplies: []QuickReply{
				{ID: "qr1", Label: "Agendar avaliação", Message: "Quero agendar uma avaliação"},
				{ID: "qr2", Label: "Implante dentário", Message: "Quero saber sobre implante"},
				{ID: "qr3", Label: "Clareamento", Message: "Quanto custa clareamento?"},
				{ID: "qr4", Label: "Falar com atendente", Message: "Quero falar com alguém"},
			},
			Rules:        Rules{UseVariables: true, OneQuestionAtTime: true, SuggestNextSteps: true, KeepResponsesShort: true},
			Restrictions: "Não prometa resultados garantidos. Sempre indique avaliação presencial.",
		},
		{
			ID:           "advogado",
			Name:         "Advogado",
			Description:  "Escritório de advocacia com atendimento especializado",
			Icon:         "Scale",
			AgentName:    "Assessor Jurídico",
			Tone:         ToneFormal,
			SystemPrompt: "Você é assistente virtual de um escritório de advocacia. Seja formal, profissional e oriente sobre áreas de atuação e agendamentos.",
			Onboarding: OnboardingScript{
				Greeting:       "Boa tarde. Sou {AGENT_NAME}, assistente virtual do escritório. Como posso ajudá-lo? Por favor, informe seu nome.",
				AskName:        "Qual é o seu nome completo?",
				AskBusiness:    "Obrigado, {USER_NAME}. Qual é o nome do escritório de advocacia que você procura?",
				BusinessLabel:  "escritório",
				AskExtra:       "Qual é a área do seu caso? (trabalhista, cível, família, criminal, empresarial...)",
				ExtraFieldName: "área",
			},
			Intents: []Intent{
				{ID: "agendar", Name: "Agendar consulta", Keywords: []string{"agendar", "consulta", "marcar", "reunião"}, Template: "Certamente, {USER_NAME}. Vou verificar a agenda para uma consulta sobre {EXTRA_VALUE} no {BUSINESS_NAME}. Você tem preferência de horário? ✅ Anotado (demo): Consulta {EXTRA_VALUE}"},
				{ID: "valores", Name: "Honorários", Keywords: []string{"valor", "honorário", "custo", "quanto", "preço"}, Template: "Os honorários no {BUSINESS_NAME} variam conforme a complexidade do caso de {EXTRA_VALUE}, {USER_NAME}. Posso agendar uma consulta inicial para avaliação?"},
				{ID: "areas", Name: "Áreas de atuação", Keywords: []string{"área", "especialidade", "atua", "trabalha"}, Template: "O {BUSINESS_NAME} atua em diversas áreas: trabalhista, cível, família, criminal e empresarial. Em qual área você precisa de auxílio, {USER_NAME}?"},
				{ID: "humano", Name: "Falar com advogado", Keywords: []string{"advogado", "doutor", "falar com", "atendente"}, Template: "Compreendo, {USER_NAME}. Vou encaminhá-lo para um de nossos advogados. ✅ Anotado (demo): Transferir para advogado"},
			},
			QuickReplies: []QuickReply{
				{ID: "qr1", Label: "Agendar consulta", Message: "Quero agendar uma consulta"},
				{ID: "qr2", Label: "Direito Trabalhista", Message: "Preciso de ajuda com questão trabalhista"},
				{ID: "qr3", Label: "Direito de Família", Message: "Tenho uma questão familiar"},
				{ID: "qr4", Label: "Falar com advogado", Message: "Quero falar diretamente com um advogado"},
			},
			Rules:        Rules{UseVariables: true, OneQuestionAtTime: true, SuggestNextSteps: true, KeepResponsesShort: true},
			Restrictions: "Nunca dê parecer jurídico. Oriente a buscar consulta presencial para análise do caso.",
		},
		{
			ID:           "supermercado",
			Name:         "Supermercado",
			Description:  "Rede de supermercados com delivery e ofertas",
			Icon:         "ShoppingCart",
			AgentName:    "Assistente de Compras",
			Tone:         ToneFriendly,
			SystemPrompt: "Você é assistente de um supermercado. Ajude com ofertas, delivery, horários e produtos.",
			Onboarding: OnboardingScript{
				Greeting:       "Olá! 🛒 Eu sou {AGENT_NAME}. Fico feliz em ajudar! Qual é o seu nome?",
				AskName:        "Qual é o seu nome?",
				AskBusiness:    "Prazer, {USER_NAME}! Qual supermercado você está procurando?",
				BusinessLabel:  "mercado",
				AskExtra:       "Qual é o seu bairro ou cidade? Assim posso verificar a loja mais próxima.",
				ExtraFieldName: "localização",
			},
			Intents: []Intent{
				{ID: "ofertas", Name: "Ofertas", Keywords: []string{"oferta", "promoção", "desconto", "barato"}, Template: "Temos ótimas ofertas essa semana no {BUSINESS_NAME}, {USER_NAME}! Para {EXTRA_VALUE}, posso enviar o folheto digital. Quer receber?"},
				{ID: "delivery", Name: "Delivery", Keywords: []string{"delivery", "entrega", "entregar", "comprar online"}, Template: "O {BUSINESS_NAME} faz entrega em {EXTRA_VALUE}, {USER_NAME}! O pedido mínimo é R$50 e a taxa varia. Quer que eu explique como funciona?"},
				{ID: "horario", Name: "Horário", Keywords: []string{"horário", "funciona", "abre", "fecha"}, Template: "O {BUSINESS_NAME} em {EXTRA_VALUE} funciona das 7h às 22h de segunda a sábado, e domingos das 8h às 20h. Posso ajudar com mais alguma coisa, {USER_NAME}?"},
				{ID: "humano", Name: "Atendente", Keywords: []string{"atendente", "falar", "pessoa"}, Template: "Vou transferir para um atendente do {BUSINESS_NAME}, {USER_NAME}! ✅ Anotado (demo): Atendimento humano"},
			},
			QuickReplies: []QuickReply{
				{ID: "qr1", Label: "Ver ofertas", Message: "Quais são as ofertas de hoje?"},
				{ID: "qr2", Label: "Fazer delivery", Message: "Vocês fazem entrega?"},
				{ID: "qr3", Label: "Horário de funcionamento", Message: "Qual o horário de funcionamento?"},
				{ID: "qr4", Label: "Falar com atendente", Message: "Quero falar com alguém"},
			},
			Rules:        Rules{UseVariables: true, OneQuestionAtTime: true, SuggestNextSteps: true, KeepResponsesShort: true},
			Restrictions: "Não confirme preços sem verificar. Informe que preços podem variar.",
		},
		{
			ID:           "estetica",
			Name:         "Clínica de Estética",
			Description:  "Harmonização facial e procedimentos estéticos premium",
			Icon:         "Sparkles",
			AgentName:    "Consultora Beauty",
			Tone:         ToneFriendly,
			SystemPrompt: "Você é consultora de uma clínica de estética premium. Seja elegante, acolhedora e destaque os benefícios dos procedimentos.",
			Onboarding: OnboardingScript{
				Greeting:       "Olá! ✨ Eu sou {AGENT_NAME}, consultora virtual. É um prazer atendê-la! Qual é o seu nome?",
				AskName:        "Qual é o seu nome?",
				AskBusiness:    "Prazer, {USER_NAME}! Qual clínica de estética você está procurando?",
				BusinessLabel:  "clínica",
				AskExtra:       "Qual procedimento te interessa? (botox, preenchimento, harmonização facial, skincare...)",
				ExtraFieldName: "procedimento",
			},
			Intents: []Intent{
				{ID: "agendar", Name: "Agendar", Keywords: []string{"agendar", "marcar", "consulta", "avaliação"}, Template: "Maravilha, {USER_NAME}! Vou verificar horários para {EXTRA_VALUE} na {BUSINESS_NAME}. Você prefere manhã ou tarde? ✅ Anotado (demo): Agendamento {EXTRA_VALUE}"},
				{ID: "valores", Name: "Valores", Keywords: []string{"valor", "preço", "quanto", "investimento"}, Template: "O investimento para {EXTRA_VALUE} na {BUSINESS_NAME} varia conforme a avaliação, {USER_NAME}. Posso agendar uma consulta cortesia para você?"},
				{ID: "procedimentos", Name: "Procedimentos", Keywords: []string{"procedimento", "tratamento", "faz", "oferece"}, Template: "A {BUSINESS_NAME} oferece diversos procedimentos: botox, preenchimento, bioestimuladores, skincare e mais. Qual é o seu objetivo, {USER_NAME}?"},
				{ID: "humano", Name: "Consultora", Keywords: []string{"atendente", "consultora", "falar"}, Template: "Vou conectar você com uma consultora da {BUSINESS_NAME}, {USER_NAME}! ✅ Anotado (demo): Atendimento personalizado"},
			},
			QuickReplies: []QuickReply{
				{ID: "qr1", Label: "Agendar avaliação", Message: "Quero agendar uma avaliação"},
				{ID: "qr2", Label: "Harmonização facial", Message: "Quero saber sobre harmonização"},
				{ID: "qr3", Label: "Botox", Message: "Quanto custa o botox?"},
				{ID: "qr4", Label: "Falar com consultora", Message: "Quero falar com uma consultora"},
			},
			Rules:        Rules{UseVariables: true, OneQuestionAtTime: true, SuggestNextSteps: true, KeepResponsesShort: true},
			Restrictions: "Não prometa resultados. Sempre indique avaliação médica.",
		},
	}
}
