package generate

import "fmt"

// ArticlePrompt builds the fixed editorial prompt for a themed article.
// The output contract (sentinel delimiters, optional image markers) is what
// ParseArticle and FindPlaceholders consume.
func ArticlePrompt(theme string) string {
	return fmt.Sprintf(`Aja como um editor sênior e redator de uma publicação online de prestígio como The New York Times, WIRED ou National Geographic. Seu público é inteligente, curioso e espera conteúdo de alta qualidade e bem pesquisado.
Sua missão é escrever um artigo de destaque cativante e confiável sobre o tema: '%s' para o blog "Curiozando".

**Instrução Principal: O artigo DEVE ser escrito inteiramente em português do Brasil.**

**Instruções Essenciais:**

1.  **Pesquisa e Síntese:** Realize uma pesquisa aprofundada usando o Google Search. Sintetize informações de várias fontes de alta autoridade (acadêmicas, jornalísticas, de especialistas) para construir uma narrativa abrangente e detalhada. Não liste apenas fatos; transforme-os em uma história convincente.
2.  **Título e Subtítulo (Deck):**
    *   **Título:** Crie um título poderoso e que desperte a curiosidade. Deve ser envolvente e otimizado para SEO.
    *   **Subtítulo:** Crie um subtítulo de uma frase que expanda o título e atraia o leitor.
3.  **Estrutura e Fluxo do Artigo:**
    *   **Introdução:** Comece com um 'gancho' forte – um fato surpreendente, uma anedota com a qual o leitor se identifique ou uma pergunta instigante para prender a atenção imediatamente.
    *   **Corpo:** Desenvolva o artigo com um fluxo lógico. Use cabeçalhos Markdown H2 para seções principais e H3 para subtópicos. Garanta transições suaves entre os parágrafos. Cada seção deve explorar uma faceta diferente do tópico, apoiada por sua pesquisa.
    *   **Conclusão:** Forneça um resumo conciso dos pontos principais e termine com uma declaração instigante ou um olhar para o futuro, deixando uma impressão duradoura.
4.  **Imagens:** Em 2 a 3 pontos do corpo do artigo que se beneficiariam de um apoio visual, insira um marcador de imagem no formato exato [!--GENERATE_IMAGE(descrição detalhada da imagem em inglês)--!], em uma linha própria. Não use esse marcador em nenhum outro formato.
5.  **Estilo de Escrita:** Escreva em um estilo narrativo claro, envolvente e sofisticado, semelhante a um artigo de destaque em uma grande publicação. Use linguagem vívida e técnicas de contar histórias. Mantenha um tom objetivo e jornalístico.
6.  **SEO:** Incorpore palavras-chave relevantes naturalmente, mas priorize a legibilidade e o engajamento humano acima de tudo. O tom deve parecer confiável e de autoridade.

**Formato de Saída:** Sua resposta inteira DEVE seguir este formato exato, usando os separadores especificados. Não inclua nenhum outro texto, explicação ou formatação markdown ao redor dos separadores.

%s
[Seu título gerado aqui]
%s

%s
[Seu subtítulo gerado aqui]
%s

%s
[Seu conteúdo gerado em Markdown aqui, com pelo menos 600 palavras]
%s`, theme, TitleStart, TitleEnd, DeckStart, DeckEnd, ContentStart, ContentEnd)
}

// CoverPrompt builds the cover-image request for a generated title. In-body
// image markers carry their own full prompt and are never wrapped in this
// template.
func CoverPrompt(title string) string {
	return fmt.Sprintf(`Crie uma imagem de capa profissional e de alta qualidade para um post de blog intitulado '%s'. O estilo deve ser uma ilustração digital fotorrealista com uma estética moderna e limpa. A imagem deve ser visualmente atraente, relevante para o tema do post e adequada para uma publicação online popular sobre fatos interessantes e curiosidades. Evite texto na imagem. A composição deve ser equilibrada e chamativa.`, title)
}
